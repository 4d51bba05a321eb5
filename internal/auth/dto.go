// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Email    string `form:"email"    label:"Email" validate:"required,email,max=255"`
	Password string `form:"password" label:"Parol" validate:"required,max=128"`
}

type RegisterRequest struct {
	FullName        string `form:"full_name"        label:"Ism"              validate:"required,min=2,max=100"`
	Email           string `form:"email"            label:"Email"            validate:"required,email,max=255"`
	Phone           string `form:"phone"            label:"Telefon"          validate:"omitempty,max=30"`
	Company         string `form:"company"          label:"Kompaniya"        validate:"omitempty,max=150"`
	Password        string `form:"password"         label:"Parol"            validate:"required,strongpwd,max=128"`
	ConfirmPassword string `form:"confirm_password" label:"Parolni tasdiqlash" validate:"required,eqfield=Password"`
}

type AdminLoginRequest struct {
	Username string `form:"username" label:"Login" validate:"required,max=100"`
	Password string `form:"password" label:"Parol" validate:"required,max=128"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" label:"Joriy parol"        validate:"required"`
	NewPassword     string `form:"new_password"     label:"Yangi parol"        validate:"required,strongpwd,max=128"`
	ConfirmPassword string `form:"confirm_password" label:"Parolni tasdiqlash" validate:"required,eqfield=NewPassword"`
}
