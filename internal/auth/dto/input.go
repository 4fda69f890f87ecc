package dto

type RegisterInput struct {
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password1" validate:"required,min=8"`
	PasswordConfirm string `json:"password2" validate:"required,eqfield=Password"`
	ShopName        string `json:"name" validate:"required,shopname,max=100"`
	Description     string `json:"description" validate:"required"`
	WhatsAppNumber  string `json:"whatsapp_number" validate:"required,whatsapp"`
	ImageURL        string `json:"image_url" validate:"omitempty,url"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
