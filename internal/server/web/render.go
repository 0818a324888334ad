package web

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strings"

	"motoreg/internal/server/models"
)

// Format is the response representation a caller asked for. The zero
// value is the human-readable default.
type Format int

const (
	FormatHTML Format = iota
	FormatJSON
	FormatXML
)

// Machine reports whether the caller expects a structured document
// rather than a rendered page. The authorization gate forks its failure
// behavior on this: machine callers get a parseable 401, browsers get a
// redirect.
func (f Format) Machine() bool { return f != FormatHTML }

// RequestFormat is the single format-detection point shared by the
// authorization gate and the serializer, so the two can never diverge.
//
// The explicit format query parameter wins. Failing that, a JSON or XML
// media type in Accept or Content-Type marks the caller as an API
// client, as does a PUT or DELETE method (forms cannot send either).
func RequestFormat(r *http.Request) Format {
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "json":
		return FormatJSON
	case "xml":
		return FormatXML
	}
	for _, h := range []string{r.Header.Get("Accept"), r.Header.Get("Content-Type")} {
		if strings.Contains(h, "application/json") {
			return FormatJSON
		}
		if strings.Contains(h, "application/xml") || strings.Contains(h, "text/xml") {
			return FormatXML
		}
	}
	if r.Method == http.MethodPut || r.Method == http.MethodDelete {
		return FormatJSON
	}
	return FormatHTML
}

// Wire envelopes. XMLName pins the root element to <response>; the json
// marshaller skips it.
type messageDoc struct {
	XMLName xml.Name `json:"-" xml:"response"`
	Message string   `json:"message" xml:"message"`
}

type errorDoc struct {
	XMLName xml.Name `json:"-" xml:"response"`
	Error   string   `json:"error" xml:"error"`
}

type tokenDoc struct {
	XMLName xml.Name `json:"-" xml:"response"`
	Token   string   `json:"token" xml:"token"`
}

// recordDoc renders a single record as field elements directly under the
// root; listDoc renders one <motorcycle> child per item.
type recordDoc struct {
	XMLName xml.Name `xml:"response"`
	models.Motorcycle
}

type listDoc struct {
	XMLName xml.Name `xml:"response"`
	Items   []models.Motorcycle `xml:"motorcycle"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeXML pretty-prints with two-space indentation and a declared UTF-8
// encoding. Consumers parse this shape; do not change it.
func writeXML(w http.ResponseWriter, code int, v any) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
	_, _ = w.Write([]byte("\n"))
}

// writeRecord serializes a single record in the requested machine format.
func writeRecord(w http.ResponseWriter, f Format, code int, m *models.Motorcycle) {
	if f == FormatXML {
		writeXML(w, code, recordDoc{Motorcycle: *m})
		return
	}
	writeJSON(w, code, m)
}

// writeList serializes an ordered sequence of records. An empty listing
// is an empty JSON array, not null.
func writeList(w http.ResponseWriter, f Format, code int, items []models.Motorcycle) {
	if f == FormatXML {
		writeXML(w, code, listDoc{Items: items})
		return
	}
	if items == nil {
		items = []models.Motorcycle{}
	}
	writeJSON(w, code, items)
}

func writeMessage(w http.ResponseWriter, f Format, code int, msg string) {
	if f == FormatXML {
		writeXML(w, code, messageDoc{Message: msg})
		return
	}
	writeJSON(w, code, messageDoc{Message: msg})
}

func writeError(w http.ResponseWriter, f Format, code int, msg string) {
	if f == FormatXML {
		writeXML(w, code, errorDoc{Error: msg})
		return
	}
	writeJSON(w, code, errorDoc{Error: msg})
}

func writeToken(w http.ResponseWriter, f Format, token string) {
	if f == FormatXML {
		writeXML(w, http.StatusOK, tokenDoc{Token: token})
		return
	}
	writeJSON(w, http.StatusOK, tokenDoc{Token: token})
}
