package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/nursery/backend/internal/application/catalog"
	csvimport "github.com/nursery/backend/internal/infrastructure/import"
)

const maxImportFileSize = 10 * 1024 * 1024

// ProductImportHandler handles CSV bulk import of products. The upload is
// validated row by row first; nothing is written unless every row passes.
type ProductImportHandler struct {
	BaseHandler
	productService  *catalogapp.ProductService
	categoryService *catalogapp.CategoryService
	sessions        csvimport.SessionStore
}

// NewProductImportHandler creates a new ProductImportHandler
func NewProductImportHandler(
	productService *catalogapp.ProductService,
	categoryService *catalogapp.CategoryService,
	sessions csvimport.SessionStore,
) *ProductImportHandler {
	return &ProductImportHandler{
		productService:  productService,
		categoryService: categoryService,
		sessions:        sessions,
	}
}

func (h *ProductImportHandler) fieldRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field("code").Required().String().MaxLength(64).Unique().Build(),
		csvimport.Field("name").Required().String().MaxLength(255).Build(),
		csvimport.Field("botanical_name").String().MaxLength(255).Build(),
		csvimport.Field("description").String().Build(),
		csvimport.Field("category").Reference("category").Build(),
		csvimport.Field("pot_size").String().MaxLength(32).Build(),
		csvimport.Field("care_level").Pattern(`^(easy|moderate|expert)?$`, "easy, moderate or expert").Build(),
		csvimport.Field("light").Pattern(`^(low|medium|bright|full_sun)?$`, "low, medium, bright or full_sun").Build(),
		csvimport.Field("price").Required().Decimal().MinValue(decimal.Zero).Build(),
		csvimport.Field("stock_quantity").Int().Build(),
		csvimport.Field("low_stock_threshold").Int().Build(),
		csvimport.Field("featured").Bool().Build(),
	}
}

func (h *ProductImportHandler) newProcessor(c *gin.Context) *csvimport.ImportProcessor {
	return csvimport.NewImportProcessor(
		csvimport.WithMaxFileSize(maxImportFileSize),
		csvimport.WithReferenceLookup(func(refType, value string) (bool, error) {
			if refType != "category" {
				return false, nil
			}
			_, err := h.categoryService.GetBySlug(c.Request.Context(), value)
			return err == nil, nil
		}),
		csvimport.WithUniqueLookup(func(entityType, field, value string) (bool, error) {
			if field != "code" {
				return false, nil
			}
			_, err := h.productService.GetByCode(c.Request.Context(), value)
			return err == nil, nil
		}),
	)
}

// Validate godoc
// @Summary  Dry-run a product CSV upload, returning errors and a preview
// @Tags     import
// @Router   /admin/import/products/validate [post]
func (h *ProductImportHandler) Validate(c *gin.Context) {
	session, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.newProcessor(c).Validate(c.Request.Context(), session, bytes.NewReader(data), h.fieldRules())
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.sessions.Save(session); err != nil {
		h.InternalError(c, "Failed to save import session")
		return
	}

	h.Success(c, gin.H{"session": session, "result": result})
}

// Import godoc
// @Summary  Validate and import a product CSV in one request
// @Tags     import
// @Router   /admin/import/products [post]
func (h *ProductImportHandler) Import(c *gin.Context) {
	session, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.newProcessor(c).Validate(c.Request.Context(), session, bytes.NewReader(data), h.fieldRules())
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if !result.IsValid() {
		if saveErr := h.sessions.Save(session); saveErr != nil {
			h.InternalError(c, "Failed to save import session")
			return
		}
		h.Error(c, http.StatusUnprocessableEntity, "IMPORT_VALIDATION_FAILED", "CSV contains invalid rows")
		return
	}

	imported, err := h.applyRows(c, session, data)
	if err != nil {
		session.UpdateState(csvimport.StateFailed)
		h.sessions.Save(session)
		h.HandleError(c, err)
		return
	}

	session.UpdateState(csvimport.StateCompleted)
	if err := h.sessions.Save(session); err != nil {
		h.InternalError(c, "Failed to save import session")
		return
	}

	h.Success(c, gin.H{"session": session, "imported": imported})
}

// applyRows re-reads the validated CSV and creates one product per row.
func (h *ProductImportHandler) applyRows(c *gin.Context, session *csvimport.ImportSession, data []byte) (int, error) {
	session.UpdateState(csvimport.StateImporting)

	parser, err := csvimport.NewCSVParser(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	if err := parser.ParseHeader(); err != nil {
		return 0, err
	}

	imported := 0
	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, err
		}
		if row.IsEmpty() {
			continue
		}

		req, err := h.rowToRequest(c, row)
		if err != nil {
			return imported, err
		}

		if _, err := h.productService.Create(c.Request.Context(), req); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (h *ProductImportHandler) rowToRequest(c *gin.Context, row *csvimport.Row) (catalogapp.CreateProductRequest, error) {
	req := catalogapp.CreateProductRequest{
		Code:          row.Get("code"),
		Name:          row.Get("name"),
		BotanicalName: row.Get("botanical_name"),
		Description:   row.Get("description"),
		PotSize:       row.Get("pot_size"),
		CareLevel:     row.Get("care_level"),
		Light:         row.Get("light"),
	}

	price, err := decimal.NewFromString(row.Get("price"))
	if err != nil {
		return req, err
	}
	req.Price = price

	if slug := row.Get("category"); slug != "" {
		category, err := h.categoryService.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			return req, err
		}
		req.CategoryID = &category.ID
	}

	if raw := row.Get("stock_quantity"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return req, err
		}
		req.StockQuantity = &qty
	}

	if raw := row.Get("low_stock_threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			return req, err
		}
		req.LowStockThreshold = &threshold
	}

	if raw := row.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return req, err
		}
		req.Featured = featured
	}

	return req, nil
}

// readUpload pulls the multipart file and opens an import session for it.
func (h *ProductImportHandler) readUpload(c *gin.Context) (*csvimport.ImportSession, []byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return nil, nil, false
	}
	if fileHeader.Size > maxImportFileSize {
		h.BadRequest(c, "File exceeds maximum import size")
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to open upload")
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportFileSize+1))
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return nil, nil, false
	}

	userID, err := getAdminUserID(c)
	if err != nil {
		userID = uuid.Nil
	}

	session := csvimport.NewImportSession(userID, csvimport.EntityProducts, fileHeader.Filename, fileHeader.Size)
	return session, data, true
}

// GetSession godoc
// @Summary  Get an import session by ID
// @Tags     import
// @Router   /admin/import/sessions/{id} [get]
func (h *ProductImportHandler) GetSession(c *gin.Context) {
	sessionID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	session, err := h.sessions.Get(sessionID)
	if err != nil {
		h.InternalError(c, "Failed to load import session")
		return
	}
	if session == nil {
		h.NotFound(c, "Import session not found")
		return
	}

	h.Success(c, session)
}

// ListSessions godoc
// @Summary  List the caller's recent import sessions
// @Tags     import
// @Router   /admin/import/sessions [get]
func (h *ProductImportHandler) ListSessions(c *gin.Context) {
	userID, err := getAdminUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing user identity")
		return
	}

	sessions, err := h.sessions.GetByUser(userID, 50)
	if err != nil {
		h.InternalError(c, "Failed to list import sessions")
		return
	}

	h.Success(c, sessions)
}
