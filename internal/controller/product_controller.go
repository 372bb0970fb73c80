package controller

import (
	"errors"
	"strconv"

	"github.com/hainweb/merchant-console/config"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/middleware"
	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/internal/service"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/hainweb/merchant-console/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ProductController struct {
	service         service.ProductService
	maxImageBytes   int64
	maxRequestBytes int64
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc, upload config.UploadConfig) {
	c := ProductController{
		service:         service,
		maxImageBytes:   upload.MaxImageBytes,
		maxRequestBytes: upload.MaxRequestBytes,
	}

	guard := []echo.MiddlewareFunc{isLoggedIn, middleware.RequireApproved}

	e.GET("/products", c.GetProducts, guard...)
	e.POST("/drafts", c.CreateDraft, guard...)
	e.POST("/products/:id/drafts", c.CreateEditDraft, guard...)

	e.GET("/drafts/:draftID", c.GetDraft, guard...)
	e.DELETE("/drafts/:draftID", c.DiscardDraft, guard...)
	e.PATCH("/drafts/:draftID", c.UpdateDraftFields, guard...)

	e.POST("/drafts/:draftID/specifications", c.AddSpecification, guard...)
	e.DELETE("/drafts/:draftID/specifications/:index", c.RemoveSpecification, guard...)
	e.POST("/drafts/:draftID/highlights", c.AddHighlight, guard...)
	e.DELETE("/drafts/:draftID/highlights/:index", c.RemoveHighlight, guard...)
	e.POST("/drafts/:draftID/options", c.AddCustomOption, guard...)
	e.DELETE("/drafts/:draftID/options/:index", c.RemoveCustomOption, guard...)

	e.PUT("/drafts/:draftID/thumbnail", c.SetThumbnail, guard...)
	e.DELETE("/drafts/:draftID/thumbnail", c.RemoveThumbnail, guard...)
	e.POST("/drafts/:draftID/images", c.AddImages, guard...)
	e.DELETE("/drafts/:draftID/images/:index", c.RemoveImage, guard...)

	e.POST("/drafts/:draftID/submit", c.SubmitDraft, guard...)
}

func indexParam(e echo.Context) (int, error) {
	index, err := strconv.Atoi(e.Param("index"))
	if err != nil {
		return 0, errs.WithMessage(errs.ErrClient, "index must be a number")
	}
	return index, nil
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
	}

	products, err := c.service.GetProducts(e.Request().Context(), middleware.CurrentSession(e), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved products", products)
}

func (c *ProductController) CreateDraft(e echo.Context) error {
	resp, err := c.service.CreateDraft(e.Request().Context(), middleware.CurrentSession(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) CreateEditDraft(e echo.Context) error {
	resp, err := c.service.CreateEditDraft(e.Request().Context(), middleware.CurrentSession(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) GetDraft(e echo.Context) error {
	resp, err := c.service.GetDraft(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) DiscardDraft(e echo.Context) error {
	err := c.service.DiscardDraft(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *ProductController) UpdateDraftFields(e echo.Context) error {
	payload := dto.DraftFieldsRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateDraftFields").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.UpdateDraftFields(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) AddSpecification(e echo.Context) error {
	payload := dto.SpecificationRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddSpecification").Msg("")
	}

	resp, err := c.service.AddSpecification(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) RemoveSpecification(e echo.Context) error {
	index, err := indexParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.RemoveSpecification(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), index)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) AddHighlight(e echo.Context) error {
	payload := dto.HighlightRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddHighlight").Msg("")
	}

	resp, err := c.service.AddHighlight(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) RemoveHighlight(e echo.Context) error {
	index, err := indexParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.RemoveHighlight(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), index)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) AddCustomOption(e echo.Context) error {
	payload := dto.CustomOptionRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddCustomOption").Msg("")
	}

	resp, err := c.service.AddCustomOption(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) RemoveCustomOption(e echo.Context) error {
	index, err := indexParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.RemoveCustomOption(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), index)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) SetThumbnail(e echo.Context) error {
	limitBody(e, c.maxRequestBytes)
	fh, err := e.FormFile("thumbnail")
	if err != nil {
		log.Error().Err(err).Str("component", "SetThumbnail").Msg("")
		if isBodyTooLarge(err) {
			return response.WriteErrorResponse(e, errs.ErrFileSizeExceedingLimit, nil)
		}
		return response.WriteErrorResponse(e, errs.WithMessage(errs.ErrClient, "thumbnail file is required"), nil)
	}

	file := imageFileOrUnreadable(fh, c.maxImageBytes)

	resp, err := c.service.SetThumbnail(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), file)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, resp.Rejection, resp)
}

func (c *ProductController) RemoveThumbnail(e echo.Context) error {
	resp, err := c.service.RemoveThumbnail(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) AddImages(e echo.Context) error {
	limitBody(e, c.maxRequestBytes)
	form, err := e.MultipartForm()
	if err != nil {
		log.Error().Err(err).Str("component", "AddImages").Msg("")
		if isBodyTooLarge(err) {
			return response.WriteErrorResponse(e, errs.ErrFileSizeExceedingLimit, nil)
		}
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}
	defer form.RemoveAll()

	headers := form.File["images"]
	if len(headers) == 0 {
		return response.WriteErrorResponse(e, errs.WithMessage(errs.ErrClient, "at least one image is required"), nil)
	}

	files := make([]productform.ImageFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, imageFileOrUnreadable(fh, c.maxImageBytes))
	}

	resp, err := c.service.AddImages(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), files)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, resp.Rejection, resp)
}

func (c *ProductController) RemoveImage(e echo.Context) error {
	index, err := indexParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.RemoveImage(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"), index)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) SubmitDraft(e echo.Context) error {
	outcome, err := c.service.SubmitDraft(e.Request().Context(), middleware.CurrentSession(e), e.Param("draftID"))
	if err != nil {
		var verrs productform.ValidationErrors
		if errors.As(err, &verrs) {
			return response.WriteErrorResponse(e, err, verrs)
		}
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, outcome.Message, outcome)
}
