// Package catalog manages products and their color variants. Stock mutations
// driven by orders live in the inventory ledger, not here.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"linaoptic-api/internal/domain"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   productRepo
	logger *log.Logger
}

func New(repo productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

var validMainCategories = []string{"Hommes", "Femmes", "Enfants"}

var validSubCategories = []string{"Optique", "Solaire", "Lentilles"}

var validFrameTypes = []string{
	"Plein cadre",
	"Demi-cadre (semi-cerclé)",
	"Sans cadre (invisible)",
	"Cadre en plastique",
	"Cadre en métal",
	"Cadre rond",
	"Cadre carré",
	"Cadre rectangulaire",
	"Cadre papillon",
	"Cadre aviateur",
	"Cadre ovale",
}

type ColorInput struct {
	ColorName domain.RequestedColor `json:"colorName"`
	Images    []string              `json:"images"`
	Image     string                `json:"image,omitempty"`
	Stock     int                   `json:"stock"`
}

type ProductInput struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Translations  domain.Translations `json:"translations"`
	MainCategory  string              `json:"mainCategory"`
	SubCategory   string              `json:"subCategory"`
	FrameType     string              `json:"frameType"`
	CoverImage    string              `json:"coverImage"`
	Brand         string              `json:"brand"`
	OldPriceCents int64               `json:"oldPriceCents"`
	NewPriceCents int64               `json:"newPriceCents"`
	Colors        []ColorInput        `json:"colors"`
	Trending      bool                `json:"trending"`
}

func validate(in ProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title required", domain.ErrInvalidInput)
	}
	if !slices.Contains(validMainCategories, in.MainCategory) {
		return fmt.Errorf("%w: invalid main category %q", domain.ErrInvalidInput, in.MainCategory)
	}
	if !slices.Contains(validSubCategories, in.SubCategory) {
		return fmt.Errorf("%w: invalid sub category %q", domain.ErrInvalidInput, in.SubCategory)
	}
	if in.FrameType != "" && !slices.Contains(validFrameTypes, in.FrameType) {
		return fmt.Errorf("%w: invalid frame type %q", domain.ErrInvalidInput, in.FrameType)
	}
	if len(in.Colors) == 0 {
		return fmt.Errorf("%w: at least one color must be provided", domain.ErrInvalidInput)
	}
	return nil
}

// normalizeColors turns loosely-shaped color input into catalog variants. A
// single-string name fills all three renderings; no translation service is
// consulted, the base string stands in for missing languages.
func normalizeColors(in []ColorInput) []domain.Color {
	colors := make([]domain.Color, 0, len(in))
	for _, c := range in {
		var name domain.ColorName
		if c.ColorName.Name != nil {
			name = *c.ColorName.Name
		}
		base := strings.TrimSpace(c.ColorName.Single)
		if base == "" {
			base = name.EN
		}
		if name.EN == "" {
			name.EN = base
		}
		if name.FR == "" {
			name.FR = base
		}
		if name.AR == "" {
			name.AR = base
		}

		images := c.Images
		if len(images) == 0 && c.Image != "" {
			images = []string{c.Image}
		}

		stock := c.Stock
		if stock < 0 {
			stock = 0
		}
		colors = append(colors, domain.Color{ColorName: name, Images: images, Stock: stock})
	}
	return colors
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p := productFromInput(in)
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("catalog service: created product id=%s title=%q colors=%d stock=%d",
		created.ID, created.Title, len(created.Colors), created.StockQuantity)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p := productFromInput(in)
	p.ID = id
	return s.repo.Update(ctx, p)
}

func productFromInput(in ProductInput) domain.Product {
	p := domain.Product{
		Title:         in.Title,
		Description:   in.Description,
		Translations:  in.Translations,
		MainCategory:  in.MainCategory,
		SubCategory:   in.SubCategory,
		FrameType:     in.FrameType,
		CoverImage:    in.CoverImage,
		Brand:         in.Brand,
		OldPriceCents: in.OldPriceCents,
		NewPriceCents: in.NewPriceCents,
		Colors:        normalizeColors(in.Colors),
		Trending:      in.Trending,
	}
	p.StockQuantity = p.TotalStock()
	return p
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
