package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"motoreg/internal/common"
	"motoreg/internal/server/models"
	"motoreg/internal/server/services"
)

// fieldsFromRequest flattens a write payload into the field map the
// service validates. JSON values may be strings or numbers; both arrive
// as text, and the numeric coercion happens in one place downstream.
func fieldsFromRequest(r *http.Request) (map[string]string, error) {
	fields := map[string]string{}

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			switch value := v.(type) {
			case string:
				fields[k] = value
			case float64:
				fields[k] = strconv.FormatFloat(value, 'f', -1, 64)
			case bool:
				fields[k] = strconv.FormatBool(value)
			case nil:
				fields[k] = ""
			}
		}
		return fields, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for _, k := range services.RequiredFields {
		if vs, ok := r.PostForm[k]; ok && len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	return fields, nil
}

// idFromRequest parses the path id. A non-numeric id maps to the same
// outcome as an unknown one.
func idFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, common.ErrNotFound
	}
	return id, nil
}

// writeOpError maps a record-operation failure onto the wire taxonomy:
// 400 for validation, 404 for a missing record, 409 for a uniqueness
// conflict, 500 with the underlying text for everything else.
func (s *Server) writeOpError(w http.ResponseWriter, r *http.Request, f Format, err error) {
	var ve *common.ValidationError
	var code int
	var msg string
	switch {
	case errors.As(err, &ve):
		code = http.StatusBadRequest
		if len(ve.MissingFields) > 0 {
			msg = "Missing required fields"
		} else {
			msg = "Year and engine_cc must be integers"
		}
	case errors.Is(err, common.ErrNotFound):
		code, msg = http.StatusNotFound, "Motorcycle not found"
	case errors.Is(err, common.ErrConflict):
		code, msg = http.StatusConflict, "Record already exists"
	default:
		code, msg = http.StatusInternalServerError, err.Error()
		s.logger.Error(r.Context(), "record operation failed", "path", r.URL.Path, "error", err.Error())
	}

	if f.Machine() {
		writeError(w, f, code, msg)
		return
	}
	s.renderPage(w, code, "error.html", errorPage{
		User:    CurrentUser(r.Context()),
		Status:  code,
		Message: msg,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	f := RequestFormat(r)
	search := r.URL.Query().Get("search")

	list, err := s.motorcycles.List(r.Context(), search)
	if err != nil {
		s.writeOpError(w, r, f, err)
		return
	}

	if f.Machine() {
		writeList(w, f, http.StatusOK, list)
		return
	}
	s.renderPage(w, http.StatusOK, "list.html", listPage{
		User:        CurrentUser(r.Context()),
		Search:      search,
		Motorcycles: list,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	f := RequestFormat(r)

	id, err := idFromRequest(r)
	if err == nil {
		var m *models.Motorcycle
		if m, err = s.motorcycles.Get(r.Context(), id); err == nil {
			if f.Machine() {
				writeRecord(w, f, http.StatusOK, m)
				return
			}
			s.renderPage(w, http.StatusOK, "detail.html", detailPage{
				User:       CurrentUser(r.Context()),
				Motorcycle: m,
			})
			return
		}
	}
	s.writeOpError(w, r, f, err)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	f := RequestFormat(r)

	fields, err := fieldsFromRequest(r)
	if err != nil {
		if f.Machine() {
			writeError(w, f, http.StatusBadRequest, "Invalid request body")
			return
		}
		s.renderPage(w, http.StatusBadRequest, "error.html", errorPage{
			User: CurrentUser(r.Context()), Status: http.StatusBadRequest, Message: "Invalid request",
		})
		return
	}

	if _, err := s.motorcycles.Create(r.Context(), fields); err != nil {
		s.writeOpError(w, r, f, err)
		return
	}

	if f.Machine() {
		writeMessage(w, f, http.StatusCreated, "Motorcycle added!")
		return
	}
	http.Redirect(w, r, "/motorcycles", http.StatusSeeOther)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	f := RequestFormat(r)

	id, err := idFromRequest(r)
	if err != nil {
		s.writeOpError(w, r, f, err)
		return
	}

	fields, err := fieldsFromRequest(r)
	if err != nil {
		if f.Machine() {
			writeError(w, f, http.StatusBadRequest, "Invalid request body")
			return
		}
		s.renderPage(w, http.StatusBadRequest, "error.html", errorPage{
			User: CurrentUser(r.Context()), Status: http.StatusBadRequest, Message: "Invalid request",
		})
		return
	}

	if _, err := s.motorcycles.Update(r.Context(), id, fields); err != nil {
		s.writeOpError(w, r, f, err)
		return
	}

	if f.Machine() {
		writeMessage(w, f, http.StatusOK, "Motorcycle updated!")
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/motorcycles/%d", id), http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	f := RequestFormat(r)

	id, err := idFromRequest(r)
	if err == nil {
		err = s.motorcycles.Delete(r.Context(), id)
	}
	if err != nil {
		s.writeOpError(w, r, f, err)
		return
	}

	if f.Machine() {
		writeMessage(w, f, http.StatusOK, "Motorcycle deleted!")
		return
	}
	http.Redirect(w, r, "/motorcycles", http.StatusSeeOther)
}

func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "form.html", formPage{
		User:   CurrentUser(r.Context()),
		Title:  "Add motorcycle",
		Action: "/motorcycles",
		Fields: map[string]string{},
	})
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err == nil {
		var m *models.Motorcycle
		if m, err = s.motorcycles.Get(r.Context(), id); err == nil {
			s.renderPage(w, http.StatusOK, "form.html", formPage{
				User:   CurrentUser(r.Context()),
				Title:  fmt.Sprintf("Edit motorcycle %d", m.ID),
				Action: fmt.Sprintf("/motorcycles/%d", m.ID),
				Fields: map[string]string{
					"make":      m.Make,
					"model":     m.Model,
					"year":      strconv.Itoa(m.Year),
					"engine_cc": strconv.Itoa(m.EngineCC),
					"color":     m.Color,
				},
			})
			return
		}
	}
	s.writeOpError(w, r, FormatHTML, err)
}
