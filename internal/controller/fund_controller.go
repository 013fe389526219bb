package controller

import (
	"fundsight-be/internal/dto"
	"fundsight-be/internal/pkg/serverutils"
	"fundsight-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFundController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Documents(ctx *fiber.Ctx) error
}

type fundController struct {
	fundService     service.IFundService
	documentService service.IDocumentService
}

func NewFundController(fundService service.IFundService, documentService service.IDocumentService) IFundController {
	return &fundController{
		fundService:     fundService,
		documentService: documentService,
	}
}

func (c *fundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/fund/v1")
	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Get(":id/documents", c.Documents)
}

func (c *fundController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateFundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.fundService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create fund", res))
}

func (c *fundController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.fundService.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list funds", res))
}

func (c *fundController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid fund id")
	}

	res, err := c.fundService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "fund not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show fund", res))
}

func (c *fundController) Documents(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid fund id")
	}

	res, err := c.documentService.GetAllByFund(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list fund documents", res))
}
