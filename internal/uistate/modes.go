package uistate

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidMode is returned for an unknown customer mode.
	ErrInvalidMode = errors.New("invalid customer mode")
	// ErrInvalidPersona is returned for an unknown persona.
	ErrInvalidPersona = errors.New("invalid persona")
)

// CustomerMode selects which mock dataset and branding the CRM shows.
type CustomerMode string

// Customer modes.
const (
	ModeGeneric  CustomerMode = "generic"
	ModePiedmont CustomerMode = "piedmont"
	ModeOCVibe   CustomerMode = "ocvibe"
	ModeCousins  CustomerMode = "cousins"
)

// CustomerModes lists every mode, default first.
var CustomerModes = []CustomerMode{ModeGeneric, ModePiedmont, ModeOCVibe, ModeCousins}

// Valid reports whether m is a known mode.
func (m CustomerMode) Valid() bool {
	return slices.Contains(CustomerModes, m)
}

// ParseCustomerMode parses s case-insensitively.
func ParseCustomerMode(s string) (CustomerMode, error) {
	m := CustomerMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}

// Persona is the viewpoint used to pick a dashboard. It is not an access
// control.
type Persona string

// Personas.
const (
	PersonaExecutive       Persona = "executive"
	PersonaAssetManager    Persona = "asset-manager"
	PersonaPropertyManager Persona = "property-manager"
	PersonaLeasingManager  Persona = "leasing-manager"
)

// Personas lists every persona, default first.
var Personas = []Persona{PersonaExecutive, PersonaAssetManager, PersonaPropertyManager, PersonaLeasingManager}

// Valid reports whether p is a known persona.
func (p Persona) Valid() bool {
	return slices.Contains(Personas, p)
}

// ParsePersona parses s case-insensitively.
func ParsePersona(s string) (Persona, error) {
	p := Persona(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPersona, s)
	}
	return p, nil
}

// User is a mock account shown in the user switcher.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

var usersByMode = map[CustomerMode][]User{
	ModeGeneric: {
		{ID: "alex-morgan", Name: "Alex Morgan", Title: "Chief Operating Officer"},
		{ID: "jordan-lee", Name: "Jordan Lee", Title: "Asset Manager"},
		{ID: "sam-rivera", Name: "Sam Rivera", Title: "Property Manager"},
	},
	ModePiedmont: {
		{ID: "dana-whitfield", Name: "Dana Whitfield", Title: "EVP, Asset Management"},
		{ID: "marcus-hale", Name: "Marcus Hale", Title: "Regional Property Manager"},
		{ID: "priya-natarajan", Name: "Priya Natarajan", Title: "Leasing Director"},
	},
	ModeOCVibe: {
		{ID: "taylor-nguyen", Name: "Taylor Nguyen", Title: "Head of District Operations"},
		{ID: "chris-alvarez", Name: "Chris Alvarez", Title: "Venue Experience Manager"},
	},
	ModeCousins: {
		{ID: "elena-brooks", Name: "Elena Brooks", Title: "SVP, Portfolio Strategy"},
		{ID: "will-carter", Name: "Will Carter", Title: "Senior Property Manager"},
		{ID: "nina-shah", Name: "Nina Shah", Title: "Leasing Manager"},
	},
}

// UsersFor returns a copy of the mock users of m. Unknown modes have none.
func UsersFor(m CustomerMode) []User {
	return slices.Clone(usersByMode[m])
}

func findUser(m CustomerMode, id string) (User, bool) {
	i := slices.IndexFunc(usersByMode[m], func(u User) bool { return u.ID == id })
	if i < 0 {
		return User{}, false
	}
	return usersByMode[m][i], true
}
