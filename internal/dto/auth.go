package dto

// ── DTO modulo autenticazione ──

// LoginRequest richiesta di login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest richiesta di rotazione token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse coppia di token emessa al login o al refresh
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int            `json:"expires_in"`
	Utente       UtenteResponse `json:"utente"`
}

// ResetPasswordResponse esito del reset password amministrativo.
// Template e saluto provengono dalla politica per ruolo e vengono
// consumati dal servizio di notifica esterno.
type ResetPasswordResponse struct {
	Username            string `json:"username"`
	PasswordProvvisoria string `json:"password_provvisoria"`
	Template            string `json:"template"`
	Saluto              string `json:"saluto"`
}
