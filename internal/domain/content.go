package domain

type Testimonial struct {
	ID       int64   `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Location string  `json:"location" yaml:"location"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Text     string  `json:"text" yaml:"text"`
	Trip     string  `json:"trip" yaml:"trip"`
}

type TeamMember struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Role string `json:"role" yaml:"role"`
	Bio  string `json:"bio" yaml:"bio"`
}

type CompanyStat struct {
	Label  string `json:"label" yaml:"label"`
	Value  int    `json:"value" yaml:"value"`
	Suffix string `json:"suffix" yaml:"suffix"`
}

type ContactInfo struct {
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email" yaml:"email"`
	Address  string `json:"address" yaml:"address"`
	Hours    string `json:"hours" yaml:"hours"`
	WhatsApp string `json:"whatsapp" yaml:"whatsapp"`
}
