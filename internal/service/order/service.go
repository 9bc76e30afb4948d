// Package order implements the order lifecycle: creation, partial line
// removal, deletion and flag updates, each reconciling per-color stock
// through the inventory ledger.
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"linaoptic-api/internal/domain"
	orderrepo "linaoptic-api/internal/repository/order"
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateLines(ctx context.Context, id string, lines []domain.OrderLine, totalCents int64) (*domain.Order, error)
	UpdateFlags(ctx context.Context, id string, in orderrepo.FlagsUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type stockLedger interface {
	ApplyDelta(ctx context.Context, p *domain.Product, colorIndex, delta int) error
}

type progressMailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type Service struct {
	orders   orderRepo
	products productRepo
	ledger   stockLedger
	mailer   progressMailer
	logger   *log.Logger
}

func New(orders orderRepo, products productRepo, ledger stockLedger, mailer progressMailer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, products: products, ledger: ledger, mailer: mailer, logger: logger}
}

// Arabic fallback used when a requested color carries no Arabic rendering.
const untranslatedAR = "أصلي"

// English/French fallback for an empty requested color.
const untranslatedName = "Original"

type CreateInput struct {
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	Address         domain.Address `json:"address"`
	Products        []CreateLine   `json:"products"`
	TotalPriceCents int64          `json:"totalPriceCents"`
}

type CreateLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Color     *LineColorInput `json:"color"`
	// CoverImage is the storefront's fallback image for this line.
	CoverImage string `json:"coverImage,omitempty"`
}

type LineColorInput struct {
	ColorName domain.RequestedColor `json:"colorName"`
	Image     string                `json:"image,omitempty"`
}

// Create validates the request, materializes line snapshots, persists the
// order with the caller-supplied total and then consumes stock per line. The
// total is trusted input: the storefront already priced the cart. Product
// existence is all-or-nothing; stock adjustment is best-effort per line.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	lines := make([]domain.OrderLine, 0, len(in.Products))
	for _, req := range in.Products {
		prod, err := s.products.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("product %s: %w", req.ProductID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("load product %s: %w", req.ProductID, err)
		}
		lines = append(lines, domain.OrderLine{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Color:     snapshotColor(req, prod),
		})
	}

	saved, err := s.orders.Create(ctx, domain.Order{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Address:         in.Address,
		Products:        lines,
		TotalPriceCents: in.TotalPriceCents,
		ProductProgress: map[string]int{},
	})
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	for _, line := range saved.Products {
		s.adjustStock(ctx, line, -line.Quantity)
	}

	s.logger.Printf("order service: created id=%s email=%s lines=%d", saved.ID, saved.Email, len(saved.Products))
	return saved, nil
}

func validateCreate(in CreateInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Email) == "":
		return fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Phone) == "":
		return fmt.Errorf("%w: phone required", domain.ErrInvalidInput)
	case len(in.Products) == 0:
		return fmt.Errorf("%w: products required", domain.ErrInvalidInput)
	}
	addr := in.Address
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.Country == "" || addr.Zipcode == "" {
		return fmt.Errorf("%w: complete shipping address required", domain.ErrInvalidInput)
	}
	for _, line := range in.Products {
		if strings.TrimSpace(line.ProductID) == "" {
			return fmt.Errorf("%w: productId required on every line", domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
	}
	return nil
}

// snapshotColor builds the denormalized color snapshot stored on the line.
// A full trilingual record is used verbatim; otherwise the single supplied
// string fills the missing renderings and the Arabic one falls back to a
// fixed placeholder, since no translated data is available at this point.
func snapshotColor(req CreateLine, prod *domain.Product) domain.LineColor {
	var name domain.RequestedColor
	image := ""
	if req.Color != nil {
		name = req.Color.ColorName
		image = req.Color.Image
	}
	if image == "" {
		image = req.CoverImage
	}
	if image == "" {
		image = prod.CoverImage
	}

	if name.IsMultilingual() {
		return domain.LineColor{ColorName: *name.Name, Image: image}
	}

	en, fr, ar := "", "", ""
	if name.Name != nil {
		en, fr, ar = name.Name.EN, name.Name.FR, name.Name.AR
	}
	single := strings.TrimSpace(name.Single)
	if en == "" {
		en = single
	}
	if en == "" {
		en = untranslatedName
	}
	if fr == "" {
		fr = single
	}
	if fr == "" {
		fr = untranslatedName
	}
	if ar == "" {
		ar = untranslatedAR
	}
	return domain.LineColor{ColorName: domain.ColorName{EN: en, FR: fr, AR: ar}, Image: image}
}

// adjustStock resolves the line's color on the live product and applies a
// signed delta. Failures do not abort the enclosing operation: a missing
// product or an unresolvable color leaves stock untouched, with a warning so
// the desync is observable.
func (s *Service) adjustStock(ctx context.Context, line domain.OrderLine, delta int) {
	prod, err := s.products.GetByID(ctx, line.ProductID)
	if err != nil {
		s.logger.Printf("order service: product=%s not loaded, stock not adjusted (delta=%d): %v",
			line.ProductID, delta, err)
		return
	}
	idx, ok := prod.FindColor(line.Color.ColorName.Requested())
	if !ok {
		s.logger.Printf("order service: product=%s color=%q not resolved, stock not adjusted (delta=%d)",
			line.ProductID, line.Color.ColorName.EN, delta)
		return
	}
	if err := s.ledger.ApplyDelta(ctx, prod, idx, delta); err != nil {
		s.logger.Printf("order service: product=%s stock delta=%d failed: %v", line.ProductID, delta, err)
	}
}

type RemoveLineInput struct {
	OrderID string `json:"orderId"`
	// ProductKey is the composite "productId|colorName" line key.
	ProductKey       string `json:"productKey"`
	QuantityToRemove int    `json:"quantityToRemove"`
}

// RemoveLine decreases a line's quantity, dropping the line when it reaches
// zero, restores the removed quantity to stock (best-effort) and re-prices
// the order from the remaining lines at each product's current price.
func (s *Service) RemoveLine(ctx context.Context, in RemoveLineInput) (*domain.Order, error) {
	if strings.TrimSpace(in.OrderID) == "" {
		return nil, fmt.Errorf("%w: orderId required", domain.ErrInvalidInput)
	}
	if in.QuantityToRemove <= 0 {
		return nil, fmt.Errorf("%w: quantityToRemove must be positive", domain.ErrInvalidInput)
	}

	ord, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	productID, colorName := domain.SplitLineKey(in.ProductKey)
	idx, ok := ord.FindLine(productID, colorName)
	if !ok {
		return nil, domain.ErrLineNotFound
	}
	line := ord.Products[idx]
	if line.Quantity < in.QuantityToRemove {
		return nil, fmt.Errorf("%w: cannot remove %d of %d", domain.ErrInvalidQuantity, in.QuantityToRemove, line.Quantity)
	}

	remaining := make([]domain.OrderLine, 0, len(ord.Products))
	for i, l := range ord.Products {
		if i == idx {
			if left := l.Quantity - in.QuantityToRemove; left > 0 {
				l.Quantity = left
				remaining = append(remaining, l)
			}
			continue
		}
		remaining = append(remaining, l)
	}

	s.adjustStock(ctx, line, in.QuantityToRemove)

	total, err := s.repriceLines(ctx, remaining)
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateLines(ctx, ord.ID, remaining, total)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order service: removed qty=%d key=%q from id=%s, total=%d",
		in.QuantityToRemove, in.ProductKey, ord.ID, total)
	return updated, nil
}

// repriceLines recomputes the order total over the given lines at each
// product's current catalog price, not the price paid at order time. A
// product that no longer exists contributes zero.
func (s *Service) repriceLines(ctx context.Context, lines []domain.OrderLine) (int64, error) {
	var total int64
	for _, l := range lines {
		prod, err := s.products.GetByID(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("reprice line %s: %w", l.ProductID, err)
		}
		total += prod.NewPriceCents * int64(l.Quantity)
	}
	return total, nil
}

// Delete restores every line's quantity to stock and then removes the order.
// Restoration is best-effort per line; the delete is not rolled back when
// some lines no longer resolve.
func (s *Service) Delete(ctx context.Context, id string) error {
	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, line := range ord.Products {
		s.adjustStock(ctx, line, line.Quantity)
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("order service: deleted id=%s lines=%d", id, len(ord.Products))
	return nil
}

type FlagsInput struct {
	IsPaid          *bool          `json:"isPaid"`
	IsDelivered     *bool          `json:"isDelivered"`
	ProductProgress map[string]int `json:"productProgress"`
}

// UpdateFlags overwrites whichever flags are supplied. The progress map is
// replaced wholesale, never merged: a partial map erases untouched keys.
func (s *Service) UpdateFlags(ctx context.Context, id string, in FlagsInput) (*domain.Order, error) {
	for key, pct := range in.ProductProgress {
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("%w: progress for %q must be between 0 and 100", domain.ErrInvalidInput, key)
		}
	}
	return s.orders.UpdateFlags(ctx, id, orderrepo.FlagsUpdate{
		IsPaid:      in.IsPaid,
		IsDelivered: in.IsDelivered,
		Progress:    in.ProductProgress,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orders.ListByEmail(ctx, email)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

type NotifyInput struct {
	OrderID string `json:"orderId"`
	// Email overrides the order's address when set.
	Email        string `json:"email,omitempty"`
	ProductKey   string `json:"productKey"`
	Progress     int    `json:"progress"`
	ArticleIndex int    `json:"articleIndex,omitempty"`
}

// NotifyProgress emails the customer the fulfillment progress of one line.
// A send failure is surfaced as ErrNotificationFailed; nothing is rolled
// back, the mailer is fire-and-forget from the order's point of view.
func (s *Service) NotifyProgress(ctx context.Context, in NotifyInput) error {
	if in.Progress < 0 || in.Progress > 100 {
		return fmt.Errorf("%w: progress must be between 0 and 100", domain.ErrInvalidInput)
	}
	ord, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return err
	}

	productID, colorName := domain.SplitLineKey(in.ProductKey)
	idx, ok := ord.FindLine(productID, colorName)
	if !ok {
		return domain.ErrLineNotFound
	}

	prod, err := s.products.GetByID(ctx, ord.Products[idx].ProductID)
	if err != nil {
		return fmt.Errorf("load product for notification: %w", err)
	}

	to := in.Email
	if to == "" {
		to = ord.Email
	}
	subject, body := progressEmail(ord.Name, shortOrderID(ord.ID), prod.Title, colorName, in.Progress, in.ArticleIndex)
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		s.logger.Printf("order service: progress notification id=%s key=%q failed: %v", ord.ID, in.ProductKey, err)
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	s.logger.Printf("order service: progress notification id=%s key=%q progress=%d sent to %s",
		ord.ID, in.ProductKey, in.Progress, to)
	return nil
}

func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
