package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerFieldTypeOnce sync.Once

// registerFieldTypeValidation teaches gin's validator the "fieldtype" tag used by dto.FieldRequest.
func registerFieldTypeValidation() {
	registerFieldTypeOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("fieldtype", func(fl validator.FieldLevel) bool {
				return domain.FieldType(fl.Field().String()).IsValid()
			})
		}
	})
}

type schemaHandler struct {
	schemaService portssvc.SchemaSvcFacade
}

// RegisterSchemaRoutes registers the per-user custom field schema routes.
func RegisterSchemaRoutes(rg *gin.RouterGroup, schemaService portssvc.SchemaSvcFacade) {
	registerFieldTypeValidation()

	h := &schemaHandler{schemaService: schemaService}
	schemas := rg.Group("/schema")
	{
		schemas.GET("", h.getSchema)
		schemas.POST("/add", h.addField)
		schemas.PUT("/update", h.updateSchema)
	}
}

// getSchema godoc
// @Summary Get custom field schema
// @Description Returns the caller's custom field schema, creating an empty one on first access.
// @Tags schema
// @Produce json
// @Success 200 {object} dto.SchemaResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schema [get]
func (h *schemaHandler) getSchema(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	schema, err := h.schemaService.GetSchema(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to fetch schema")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchemaResponse(schema))
}

// addField godoc
// @Summary Add a custom field
// @Description Appends one field definition to the caller's schema.
// @Tags schema
// @Accept json
// @Produce json
// @Param field body dto.AddFieldRequest true "Field definition"
// @Success 200 {object} dto.SchemaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Field already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schema/add [post]
func (h *schemaHandler) addField(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid field type: " + req.Type})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	schema, err := h.schemaService.AddField(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to add field")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchemaResponse(schema))
}

// updateSchema godoc
// @Summary Replace custom fields
// @Description Replaces the caller's whole field list.
// @Tags schema
// @Accept json
// @Produce json
// @Param schema body dto.UpdateSchemaRequest true "New field list"
// @Success 200 {object} dto.SchemaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schema/update [put]
func (h *schemaHandler) updateSchema(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSchemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "fields" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Fields must be an array"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind schema update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	schema, err := h.schemaService.UpdateSchema(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update schema")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchemaResponse(schema))
}
