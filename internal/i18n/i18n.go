// Package i18n renders user-facing messages in the configured locale.
//
// Message keys are the English text, so an unknown locale or a key missing
// from a catalog falls back to English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	LoginSuccess        = "Logged in successfully!"
	RegisterSuccess     = "Account created successfully!"
	LogoutSuccess       = "Logged out successfully!"
	InvalidCredentials  = "Incorrect email or password. Please try again."
	UserNotFound        = "User not found. Check your email."
	LoginRateLimited    = "Too many login attempts. Wait a few minutes and try again."
	NetworkError        = "Connection error. Check your internet connection and try again."
	LoginFailed         = "Something went wrong while logging in. Please try again later."
	RegisterFailed      = "Something went wrong while creating your account. Please try again later."
	EmailTaken          = "This email is already registered."
	ForgotSuccess       = "We sent a recovery link to your email. Check your inbox."
	RateLimited         = "Too many attempts. Wait a few minutes and try again."
	ForgotFailed        = "Something went wrong while processing your request. Please try again later."
	ResetInvalidToken   = "Invalid recovery token."
	ResetTokenExpired   = "Invalid or expired token. Request a new recovery link."
	ResetSuccess        = "Password reset successfully! Redirecting to login..."
	ResetFailed         = "Something went wrong while resetting your password. Please try again later."
	NotAuthenticated    = "Not authenticated."
	SessionExpired      = "Your session has expired. Please log in again."
	TasksLoadFailed     = "Failed to load tasks."
	TaskTitleRequired   = "Title is required."
	TaskTitleEmpty      = "Title cannot be empty."
	TaskCreated         = "Task created successfully!"
	TaskCreateFailed    = "Failed to create task."
	TaskUpdated         = "Task updated!"
	TaskUpdateFailed    = "Failed to update task."
	TaskDeleted         = "Task deleted!"
	TaskDeleteFailed    = "Failed to delete task."
	TaskDeleteConfirm   = "Are you sure you want to delete this task?"
	TaskNotFound        = "Task not found."
	EmailRequired       = "Email is required."
	EmailInvalid        = "Invalid email."
	NameRequired        = "Name is required."
	PasswordRequired    = "Password is required."
	PasswordTooShort    = "Password must be at least 6 characters."
	PasswordNoUpper     = "Password must contain at least one uppercase letter."
	PasswordNoSymbol    = "Password must contain at least one special character (@, !, #, $, etc.)."
	PasswordNoDigit     = "Password must contain at least one number."
	ConfirmRequired     = "Confirm your password."
	PasswordMismatch    = "Passwords do not match."
	StrengthVeryWeak    = "Very weak"
	StrengthWeak        = "Weak"
	StrengthMedium      = "Medium"
	StrengthStrong      = "Strong"
	StrengthVeryStrong  = "Very strong"
	HintLength          = "At least 6 characters"
	HintUpper           = "At least one uppercase letter"
	HintSymbol          = "At least one special character (@, !, #, $, etc.)"
	HintDigit           = "At least one number"
)

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

func init() {
	pt := language.BrazilianPortuguese
	for key, msg := range map[string]string{
		LoginSuccess:       "Login realizado com sucesso!",
		RegisterSuccess:    "Conta criada com sucesso!",
		LogoutSuccess:      "Desconectado com sucesso!",
		InvalidCredentials: "Email ou senha incorretos. Por favor, tente novamente.",
		UserNotFound:       "Usuário não encontrado. Verifique seu email.",
		LoginRateLimited:   "Muitas tentativas de login. Aguarde alguns minutos e tente novamente.",
		NetworkError:       "Erro de conexão. Verifique sua internet e tente novamente.",
		LoginFailed:        "Ocorreu um erro ao fazer login. Por favor, tente novamente mais tarde.",
		RegisterFailed:     "Erro ao criar conta.",
		EmailTaken:         "Este email já está cadastrado",
		ForgotSuccess:      "Enviamos um link de recuperação para seu email. Verifique sua caixa de entrada.",
		RateLimited:        "Muitas tentativas. Aguarde alguns minutos e tente novamente.",
		ForgotFailed:       "Ocorreu um erro ao processar sua solicitação. Tente novamente mais tarde.",
		ResetInvalidToken:  "Token de recuperação inválido.",
		ResetTokenExpired:  "Token inválido ou expirado. Solicite um novo link de recuperação.",
		ResetSuccess:       "Senha redefinida com sucesso! Redirecionando para o login...",
		ResetFailed:        "Ocorreu um erro ao redefinir sua senha. Tente novamente mais tarde.",
		NotAuthenticated:   "Não autenticado.",
		SessionExpired:     "Sua sessão expirou. Faça login novamente.",
		TasksLoadFailed:    "Erro ao carregar tarefas",
		TaskTitleRequired:  "Título é obrigatório",
		TaskTitleEmpty:     "Título não pode estar vazio",
		TaskCreated:        "Tarefa criada com sucesso!",
		TaskCreateFailed:   "Erro ao criar tarefa",
		TaskUpdated:        "Tarefa atualizada!",
		TaskUpdateFailed:   "Erro ao atualizar tarefa",
		TaskDeleted:        "Tarefa deletada!",
		TaskDeleteFailed:   "Erro ao deletar tarefa",
		TaskDeleteConfirm:  "Tem certeza que deseja deletar esta tarefa?",
		TaskNotFound:       "Tarefa não encontrada.",
		EmailRequired:      "Email é obrigatório",
		EmailInvalid:       "Email inválido",
		NameRequired:       "Nome é obrigatório",
		PasswordRequired:   "Senha é obrigatória",
		PasswordTooShort:   "Senha deve ter pelo menos 6 caracteres",
		PasswordNoUpper:    "Senha deve conter pelo menos uma letra maiúscula",
		PasswordNoSymbol:   "Senha deve conter pelo menos um caractere especial (@, !, #, $, etc.)",
		PasswordNoDigit:    "Senha deve conter pelo menos um número",
		ConfirmRequired:    "Confirme sua senha",
		PasswordMismatch:   "Senhas não conferem",
		StrengthVeryWeak:   "Muito fraca",
		StrengthWeak:       "Fraca",
		StrengthMedium:     "Média",
		StrengthStrong:     "Forte",
		StrengthVeryStrong: "Muito forte",
		HintLength:         "Pelo menos 6 caracteres",
		HintUpper:          "Pelo menos uma letra maiúscula",
		HintSymbol:         "Pelo menos um caractere especial (@, !, #, $, etc.)",
		HintDigit:          "Pelo menos um número",
	} {
		if err := message.SetString(pt, key, msg); err != nil {
			panic(err)
		}
	}
}

// Translator renders message keys for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for the closest supported match of locale.
// Unparseable or empty locales fall back to English.
func New(locale string) *Translator {
	tag := language.English
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			_, idx, conf := matcher.Match(t)
			if conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return &Translator{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the resolved language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T renders a message key.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(key)
}
