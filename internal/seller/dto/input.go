package dto

type UpdateProfileInput struct {
	UserID         int64  `json:"-"`
	Name           string `json:"name" validate:"required,shopname,max=100"`
	Description    string `json:"description" validate:"required"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"required,whatsapp"`
	ImageURL       string `json:"image_url" validate:"omitempty,url"`
}
