// ABOUTME: Wire types for the adoption API (auth, animals, catalogs, donations)
// ABOUTME: Includes the string-or-object shelter address decoding

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UserRole is one entry of a user's role list
type UserRole struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	GuardName string `json:"guard_name,omitempty"`
}

// User is the authenticated user's profile
type User struct {
	IDUser    int        `json:"id_user"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Roles     []UserRole `json:"roles,omitempty"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// LoginResponse represents the POST /api/login response
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserRole    string `json:"user_role"`
	Status      int    `json:"status,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// Document types accepted by registration.
const (
	DocumentCedula    = "Cédula"
	DocumentPasaporte = "Pasaporte"
	DocumentRUC       = "RUC"
)

// DocumentTypes lists valid document types in display order.
var DocumentTypes = []string{DocumentCedula, DocumentPasaporte, DocumentRUC}

// RegisterPayload is the POST /api/register body
type RegisterPayload struct {
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name,omitempty"`
	LastName       string `json:"last_name"`
	SecondLastName string `json:"second_last_name,omitempty"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

// Validate checks required fields before the payload is sent.
func (p RegisterPayload) Validate() error {
	required := map[string]string{
		"first_name":      p.FirstName,
		"last_name":       p.LastName,
		"document_number": p.DocumentNumber,
		"phone":           p.Phone,
		"email":           p.Email,
		"password":        p.Password,
	}
	for _, field := range []string{"first_name", "last_name", "document_number", "phone", "email", "password"} {
		if strings.TrimSpace(required[field]) == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	for _, dt := range DocumentTypes {
		if p.DocumentType == dt {
			return nil
		}
	}
	return fmt.Errorf("document_type must be one of %s", strings.Join(DocumentTypes, ", "))
}

// RegisterResponse represents the POST /api/register response
type RegisterResponse struct {
	Message string `json:"message"`
}

// Species is an animal species
type Species struct {
	IDSpecies   int    `json:"id_species"`
	SpeciesName string `json:"species_name"`
}

// Breed is a breed belonging to a species
type Breed struct {
	IDBreed   int      `json:"id_breed"`
	BreedName string   `json:"breed_name"`
	IDSpecies int      `json:"id_species"`
	Species   *Species `json:"species,omitempty"`
}

// Address is a shelter's postal address. The backend sends either a
// structured object or a preformatted string; the string lands in Raw.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Raw        string `json:"-"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = Address{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = Address{Raw: s}
		return nil
	}
	type plain Address
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	*a = Address(p)
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	if a.Raw != "" {
		return json.Marshal(a.Raw)
	}
	type plain Address
	return json.Marshal(plain(a))
}

// String formats the address as "street, city, country, postal_code",
// skipping empty parts.
func (a Address) String() string {
	if a.Raw != "" {
		return a.Raw
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.Country, a.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Shelter is an animal shelter
type Shelter struct {
	IDShelter    int     `json:"id_shelter"`
	ShelterName  string  `json:"shelter_name"`
	Address      Address `json:"address"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	Description  string  `json:"description,omitempty"`
	ContactEmail string  `json:"contact_email,omitempty"`
	ContactPhone string  `json:"contact_phone,omitempty"`
}

// EmailAddress returns email, falling back to contact_email.
func (s Shelter) EmailAddress() string {
	if s.Email != "" {
		return s.Email
	}
	return s.ContactEmail
}

// PhoneNumber returns phone, falling back to contact_phone.
func (s Shelter) PhoneNumber() string {
	if s.Phone != "" {
		return s.Phone
	}
	return s.ContactPhone
}

// ShelterUpsertPayload is the create/update body for shelters.
// It never carries id_shelter.
type ShelterUpsertPayload struct {
	ShelterName  string  `json:"shelter_name"`
	ContactEmail string  `json:"contact_email"`
	Phone        string  `json:"phone"`
	Description  string  `json:"description,omitempty"`
	Address      Address `json:"address"`
}

// ShelterPayloadFrom builds an upsert body from an existing shelter,
// mapping email/contact_phone onto the fields the backend expects.
func ShelterPayloadFrom(s Shelter) ShelterUpsertPayload {
	addr := s.Address
	addr.Raw = ""
	return ShelterUpsertPayload{
		ShelterName:  s.ShelterName,
		ContactEmail: s.EmailAddress(),
		Phone:        s.PhoneNumber(),
		Description:  s.Description,
		Address:      addr,
	}
}

// Photo is an animal photo. The backend uses image_url or photo_url.
type Photo struct {
	IDPhoto  int    `json:"id_photo"`
	IDAnimal int    `json:"id_animal"`
	ImageURL string `json:"image_url,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// MedicalRecord is a veterinary record for an animal
type MedicalRecord struct {
	IDMedicalRecord int    `json:"id_medical_record,omitempty"`
	RecordDate      string `json:"record_date"`
	Description     string `json:"description"`
	Veterinarian    string `json:"veterinarian"`
	IDAnimal        int    `json:"id_animal,omitempty"`
}

// Animal is an adoptable animal
type Animal struct {
	IDAnimal       int             `json:"id_animal"`
	AnimalName     string          `json:"animal_name"`
	Status         string          `json:"status"`
	BirthDate      string          `json:"birth_date"`
	Color          string          `json:"color"`
	IsSterilized   bool            `json:"is_sterilized"`
	Description    string          `json:"description"`
	IDBreed        int             `json:"id_breed"`
	IDShelter      int             `json:"id_shelter"`
	Sex            string          `json:"sex"`
	Age            int             `json:"age"`
	Size           string          `json:"size"`
	Breed          *Breed          `json:"breed,omitempty"`
	Shelter        *Shelter        `json:"shelter,omitempty"`
	Species        *Species        `json:"species,omitempty"`
	Photos         []Photo         `json:"photos,omitempty"`
	MedicalRecords []MedicalRecord `json:"medical_records,omitempty"`
}

// AnimalUpsertPayload is the create/update body for animals
type AnimalUpsertPayload struct {
	AnimalName   string `json:"animal_name"`
	Status       string `json:"status"`
	Sex          string `json:"sex"`
	Size         string `json:"size"`
	IDBreed      int    `json:"id_breed"`
	IDShelter    int    `json:"id_shelter"`
	IsSterilized bool   `json:"is_sterilized"`
	Age          int    `json:"age"`
	Color        string `json:"color"`
	BirthDate    string `json:"birth_date,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Upsert enumerations accepted by the admin animal endpoints.
var (
	AnimalStatuses = []string{"Disponible", "Adoptado", "En tratamiento"}
	AnimalSexes    = []string{"Macho", "Hembra"}
	AnimalSizes    = []string{"Pequeño", "Mediano", "Grande"}
)

// SpeciesUpsertPayload is the create/update body for species
type SpeciesUpsertPayload struct {
	SpeciesName string `json:"species_name"`
}

// BreedUpsertPayload is the create/update body for breeds
type BreedUpsertPayload struct {
	BreedName string `json:"breed_name"`
	IDSpecies int    `json:"id_species"`
}

// Donation categories.
var DonationCategories = []string{"Alimentos", "Medicamentos", "Juguetes", "Ropa de cama", "Higiene", "Otros"}

// DonationItem is a donation-needs catalog entry
type DonationItem struct {
	IDDonationItemCatalog int    `json:"id_donation_item_catalog"`
	ItemName              string `json:"item_name"`
	Category              string `json:"category"`
	QuantityNeeded        int    `json:"quantity_needed"`
	CollectedQuantity     int    `json:"collected_quantity"`
	Description           string `json:"description,omitempty"`
	IDShelter             *int   `json:"id_shelter,omitempty"`
}

// DonationItemUpsertPayload is the create/update body for donation items
type DonationItemUpsertPayload struct {
	ItemName       string `json:"item_name"`
	Category       string `json:"category"`
	QuantityNeeded int    `json:"quantity_needed"`
	IDShelter      *int   `json:"id_shelter,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Page is one page of a paginated listing
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}
