package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"case-management-system/internal/iam/domain/user"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/mailer"
	"case-management-system/internal/pkg/rest_err"
	"case-management-system/internal/pkg/validation"

	"github.com/gin-gonic/gin"
)

const module = "auth"

type Controller interface {
	Routes(routes gin.IRouter)
	Healthcheck(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	CreateOTP(c *gin.Context)
	ResetPassword(c *gin.Context)
}

type controllerImpl struct {
	Service    Service
	Middleware middleware.Middleware
}

func NewController(service Service, mw middleware.Middleware) Controller {
	return &controllerImpl{
		Service:    service,
		Middleware: mw,
	}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	authGroup := routes.Group("/auth")
	{
		authGroup.POST("/login", ctrl.Login)
		authGroup.POST("/logout", ctrl.Middleware.SetContextAutorization(), ctrl.Logout)
		authGroup.POST("/otp", ctrl.CreateOTP)
		authGroup.POST("/password/reset", ctrl.ResetPassword)
		authGroup.GET("/healthcheck", ctrl.Middleware.SetContextAutorization(), ctrl.Healthcheck)
	}
}

// @Summary Efetua o login do usuário
// @Description Autentica por e-mail e senha, abre uma nova sessão (revogando as anteriores) e devolve o token de acesso. O token também é gravado no cookie de sessão.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credenciais do Usuário (Email e Senha)"
// @Success 200 {object} LoginResponse "Login bem-sucedido"
// @Failure 400 {object} rest_err.RestErr "Requisição inválida"
// @Failure 401 {object} rest_err.RestErr "Credenciais inválidas"
// @Failure 403 {object} rest_err.RestErr "Usuário inativo"
// @Failure 500 {object} rest_err.RestErr "Erro interno do servidor"
// @Router /api/auth/login [post]
func (ctrl *controllerImpl) Login(c *gin.Context) {
	trace := middleware.TraceID(c)
	entry := middleware.AuditEntry(c, module, "login", "auth.Login")

	var req LoginRequest
	if restErr := validation.BindJSON(c, loginRules, &req, trace); restErr != nil {
		entry.OutputData = auditoria_log.SerializeData(restErr)
		auditoria_log.LogAsync(c.Request.Context(), entry)
		c.JSON(restErr.Code, restErr)
		return
	}
	entry.Identifier = req.Email
	entry.InputData = auditoria_log.SerializeData(map[string]string{"email": req.Email})

	meta := middleware.GetMetadata(c)
	uLogin, err := ctrl.Service.Login(c.Request.Context(), req.Email, req.Password, Client{IP: meta.IP, UserAgent: meta.Agent})
	if err != nil {
		var restErr *rest_err.RestErr
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			restErr = rest_err.NewUnauthorizedError(trace, "E-mail ou senha inválidos.")
		case errors.Is(err, ErrUserInactive):
			restErr = rest_err.NewForbiddenError(trace, "Usuário inativo.")
		default:
			slog.Error("falha no login", slog.String("component", "AUTH"), slog.Any("error", err))
			restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
		}
		entry.OutputData = auditoria_log.SerializeData(restErr)
		auditoria_log.LogAsync(c.Request.Context(), entry)
		c.JSON(restErr.Code, restErr)
		return
	}

	if err := ctrl.Middleware.Cookies().Save(c, uLogin.Token, uLogin.Expiry); err != nil {
		slog.Warn("falha ao gravar cookie de sessão", slog.String("component", "AUTH"), slog.Any("error", err))
	}

	response := LoginResponse{
		User:   user.ToResponse(uLogin.User),
		Token:  uLogin.Token,
		Expire: uLogin.Expiry,
	}

	userUUID := uLogin.User.UUID
	entry.UserUUID = &userUUID
	entry.TeamUUID = uLogin.User.TeamUUID
	entry.EntityType = "session"
	entry.EntityID = uLogin.Session.UUID.String()
	entry.Success = true
	entry.OutputData = auditoria_log.SerializeData(response.User)
	auditoria_log.LogAsync(c.Request.Context(), entry)

	c.JSON(http.StatusOK, response)
}

// @Summary Encerra a sessão atual
// @Description Revoga a sessão do token usado na requisição e limpa o cookie.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 204 "Sessão encerrada"
// @Failure 401 {object} rest_err.RestErr "Token ausente ou inválido"
// @Failure 500 {object} rest_err.RestErr "Erro interno do servidor"
// @Router /api/auth/logout [post]
func (ctrl *controllerImpl) Logout(c *gin.Context) {
	trace := middleware.TraceID(c)
	login, ok := middleware.GetAuthenticatedUser(c)
	if !ok {
		restErr := rest_err.NewUnauthorizedError(trace, "Usuário não autenticado.")
		c.JSON(restErr.Code, restErr)
		return
	}

	err := ctrl.Service.Logout(c.Request.Context(), login.Session.Token)

	entry := middleware.AuditEntry(c, module, "logout", "auth.Logout")
	entry.EntityType = "session"
	entry.EntityID = login.Session.UUID.String()
	entry.Success = err == nil
	auditoria_log.LogAsync(c.Request.Context(), entry)

	if err != nil {
		slog.Error("falha ao revogar sessão", slog.String("component", "AUTH"), slog.Any("error", err))
		restErr := rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
		c.JSON(restErr.Code, restErr)
		return
	}

	_ = ctrl.Middleware.Cookies().Clear(c)
	c.Status(http.StatusNoContent)
}

// @Summary Solicita um código OTP
// @Description Gera um OTP de 6 dígitos, válido por 5 minutos, e envia por e-mail. A resposta não indica se o e-mail existe.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body OTPRequest true "Email para envio do OTP"
// @Success 202 "OTP enviado"
// @Failure 400 {object} rest_err.RestErr "Requisição inválida"
// @Failure 409 {object} rest_err.RestErr "OTP pendente"
// @Failure 500 {object} rest_err.RestErr "Erro interno"
// @Router /api/auth/otp [post]
func (ctrl *controllerImpl) CreateOTP(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req OTPRequest
	if restErr := validation.BindJSON(c, otpRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	if err := ctrl.Service.CreateOTPCode(c.Request.Context(), req.Email); err != nil {
		var restErr *rest_err.RestErr
		switch {
		case errors.Is(err, ErrOTPPending):
			restErr = rest_err.NewConflictValidationError(trace, "Já existe um código pendente para este e-mail.", nil)
		case errors.Is(err, mailer.ErrMailerNotInitialized):
			causes := []rest_err.Causes{rest_err.NewCause("mailer", "serviço de e-mail não inicializado")}
			restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", causes)
		default:
			slog.Error("falha ao gerar otp", slog.String("component", "AUTH"), slog.Any("error", err))
			restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
		}
		c.JSON(restErr.Code, restErr)
		return
	}

	c.Status(http.StatusAccepted)
}

// @Summary Troca a senha usando OTP
// @Description Valida o OTP, troca a senha e revoga todas as sessões do usuário.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body OTPResetPasswordRequest true "Email, OTP e nova senha"
// @Success 204 "Senha alterada"
// @Failure 400 {object} rest_err.RestErr "Requisição inválida"
// @Failure 403 {object} rest_err.RestErr "OTP inválido ou expirado"
// @Failure 500 {object} rest_err.RestErr "Erro interno"
// @Router /api/auth/password/reset [post]
func (ctrl *controllerImpl) ResetPassword(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req OTPResetPasswordRequest
	if restErr := validation.BindJSON(c, resetRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	err := ctrl.Service.ResetPassword(c.Request.Context(), req.Email, req.OTPCode, req.Password)

	entry := middleware.AuditEntry(c, module, "password_reset", "auth.ResetPassword")
	entry.Identifier = req.Email
	entry.Success = err == nil
	auditoria_log.LogAsync(c.Request.Context(), entry)

	if err != nil {
		var restErr *rest_err.RestErr
		switch {
		case errors.Is(err, ErrOTPWrong):
			restErr = rest_err.NewForbiddenError(trace, "Código OTP inválido ou expirado.")
		case errors.Is(err, user.ErrInvalidInput):
			restErr = rest_err.NewBadRequestError(trace, "Senha inválida.")
		default:
			slog.Error("falha ao trocar senha", slog.String("component", "AUTH"), slog.Any("error", err))
			restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
		}
		c.JSON(restErr.Code, restErr)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Verifica o status do login
// @Description Retorna o usuário autenticado, suas permissões efetivas e o horário do servidor.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HealthcheckResponse
// @Failure 401 {object} rest_err.RestErr "Token ausente ou inválido"
// @Router /api/auth/healthcheck [get]
func (ctrl *controllerImpl) Healthcheck(c *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(c)
	if !ok {
		restErr := rest_err.NewUnauthorizedError(middleware.TraceID(c), "Usuário não autenticado.")
		c.JSON(restErr.Code, restErr)
		return
	}

	c.JSON(http.StatusOK, HealthcheckResponse{
		User:        user.ToResponse(login.User),
		Permissions: toPermissions(login.Permissions),
		SessionExp:  login.Session.ExpiresAt,
		ServerTime:  time.Now().UTC(),
	})
}
