package domain

import "encoding/xml"

// Address is owned by exactly one Customer and has no identity of its own on the wire.
type Address struct {
	ID       int64  `json:"-" xml:"-"`
	Number   int    `json:"number" xml:"number"`
	Street   string `json:"street" xml:"street"`
	City     string `json:"city" xml:"city"`
	Province string `json:"province" xml:"province"`
	Zip      string `json:"zip" xml:"zip"`
	Country  string `json:"country" xml:"country"`
}

// Customer is the single resource exposed by the API.
type Customer struct {
	XMLName   xml.Name `json:"-" xml:"customer"`
	ID        int64    `json:"id" xml:"id,attr"`
	Firstname string   `json:"firstname" xml:"firstname"`
	Lastname  string   `json:"lastname" xml:"lastname"`
	Address   Address  `json:"address" xml:"address"`
	Email     string   `json:"email" xml:"email" binding:"omitempty,email"`
	Phone     string   `json:"phone" xml:"phone"`
}

// CustomerList wraps a list of customers for XML encoding.
type CustomerList struct {
	XMLName   xml.Name   `xml:"customers"`
	Customers []Customer `xml:"customer"`
}

// AddressPatch carries the address fields of a partial update. Nil means keep.
type AddressPatch struct {
	Number   *int    `json:"number,omitempty" xml:"number,omitempty"`
	Street   *string `json:"street,omitempty" xml:"street,omitempty"`
	City     *string `json:"city,omitempty" xml:"city,omitempty"`
	Province *string `json:"province,omitempty" xml:"province,omitempty"`
	Zip      *string `json:"zip,omitempty" xml:"zip,omitempty"`
	Country  *string `json:"country,omitempty" xml:"country,omitempty"`
}

// CustomerPatch carries the fields of a partial update. It has no identifier
// field, so an update can never reassign a customer's ID. An empty email
// clears the stored one.
type CustomerPatch struct {
	XMLName   xml.Name      `json:"-" xml:"customer"`
	Firstname *string       `json:"firstname,omitempty" xml:"firstname,omitempty"`
	Lastname  *string       `json:"lastname,omitempty" xml:"lastname,omitempty"`
	Address   *AddressPatch `json:"address,omitempty" xml:"address,omitempty"`
	Email     *string       `json:"email,omitempty" xml:"email,omitempty" binding:"omitempty,email|len=0"`
	Phone     *string       `json:"phone,omitempty" xml:"phone,omitempty"`
}

// Apply copies every present field of p onto a. A nil patch is a no-op.
func (a *Address) Apply(p *AddressPatch) {
	if p == nil {
		return
	}
	setIfPresent(&a.Number, p.Number)
	setIfPresent(&a.Street, p.Street)
	setIfPresent(&a.City, p.City)
	setIfPresent(&a.Province, p.Province)
	setIfPresent(&a.Zip, p.Zip)
	setIfPresent(&a.Country, p.Country)
}

// Apply merges p into c. The address is merged field by field first, then the
// customer's own fields.
func (c *Customer) Apply(p CustomerPatch) {
	c.Address.Apply(p.Address)
	setIfPresent(&c.Firstname, p.Firstname)
	setIfPresent(&c.Lastname, p.Lastname)
	setIfPresent(&c.Email, p.Email)
	setIfPresent(&c.Phone, p.Phone)
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
