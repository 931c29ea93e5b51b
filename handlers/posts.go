package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/tenancy"
	"github.com/lizet96/relaciones-backend/validacion"
)

// PostHandler atiende /posts, siempre acotado al tenant del host
type PostHandler struct {
	posts repository.PostRepository
	users repository.UserRepository
	val   *validacion.Validador
	log   *zap.Logger

	// sinTenant permite listar todos los posts cuando el host no tiene tenant
	sinTenant bool
}

func NewPostHandler(store *repository.Store, val *validacion.Validador, log *zap.Logger, sinTenant bool) *PostHandler {
	return &PostHandler{
		posts:     store.Posts,
		users:     store.Users,
		val:       val,
		log:       log,
		sinTenant: sinTenant,
	}
}

// Listar devuelve los posts del tenant actual, del más reciente al más antiguo
func (h *PostHandler) Listar(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tenant := tenancy.FromContext(ctx)

	var filtro *int64
	if tenant != nil {
		filtro = &tenant.ID
	} else {
		if !h.sinTenant {
			return noEncontrado(c, "Tenant no encontrado")
		}
		h.log.Warn("Listando posts sin tenant",
			zap.String("host", c.Hostname()),
			zap.String("path", c.Path()),
		)
	}

	posts, err := h.posts.ListDetalle(ctx, filtro)
	if err != nil {
		return fallo(c, h.log, "Tenant no encontrado", "Error al obtener posts", err)
	}
	return c.JSON(models.PostsResponse{
		Posts:         posts,
		CurrentTenant: tenant,
	})
}

// Crear publica un post del usuario autenticado en el tenant actual.
// Requiere JWTMiddleware y RequireTenant.
func (h *PostHandler) Crear(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tenant := tenancy.FromContext(ctx)
	if tenant == nil {
		return noEncontrado(c, "Tenant no encontrado")
	}
	userID, _ := c.Locals("user_id").(int64)

	var entrada models.PostEntrada
	if err := decodificar(c, &entrada); err != nil {
		return datosInvalidos(c)
	}

	post := models.Post{
		Title:    entrada.Title.Valor,
		Content:  entrada.Content.Valor,
		UserID:   userID,
		TenantID: tenant.ID,
	}

	campos := entrada.Campos()
	errores := validacion.Campos(campos, true, true)
	revisar := map[string]bool{}
	for _, campo := range campos {
		if libre(errores, campo.Nombre) {
			revisar[campo.Nombre] = true
		}
	}
	for campo, mensajes := range h.val.Estructura(post, revisar) {
		for _, m := range mensajes {
			errores.Agregar(campo, m)
		}
	}
	if !errores.Vacio() {
		return validacionFallida(c, errores)
	}

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		return fallo(c, h.log, "Usuario no encontrado", "Error al crear el post", err)
	}
	if err := h.posts.Create(ctx, &post); err != nil {
		return fallo(c, h.log, "Usuario no encontrado", "Error al crear el post", err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.PostDetalle{
		Post:   post,
		User:   user.Publico(),
		Tenant: *tenant,
	})
}
