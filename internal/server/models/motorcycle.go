package models

// Motorcycle is the resource record. ID is store-assigned and immutable;
// every other field is replaced wholesale on update. Tag order fixes the
// serialized field order: id, make, model, year, engine_cc, color.
type Motorcycle struct {
	ID       int64  `json:"id" xml:"id"`
	Make     string `json:"make" xml:"make"`
	Model    string `json:"model" xml:"model"`
	Year     int    `json:"year" xml:"year"`
	EngineCC int    `json:"engine_cc" xml:"engine_cc"`
	Color    string `json:"color" xml:"color"`
}
