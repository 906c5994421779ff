package services

import (
	"time"

	"benta/internal/models"
	"benta/internal/repositories"

	log "github.com/sirupsen/logrus"
)

// Sale event names published after each write.
const (
	SaleCreated = "sale.created"
	SaleUpdated = "sale.updated"
	SaleDeleted = "sale.deleted"
)

// SaleEventPublisher announces sale changes to other systems.
type SaleEventPublisher interface {
	PublishSaleEvent(event string, payload map[string]interface{}) error
}

// SaleLine is one line item as supplied by the client: the product and
// the price it was sold for, in cents.
type SaleLine struct {
	ProductID uint
	Price     int64
}

// SaleInput carries the client-editable fields of a sale.
type SaleInput struct {
	CustomerName  string
	Phone         *string
	Date          time.Time
	Status        models.SaleStatus
	Notes         *string
	PaymentMethod models.PaymentMethod
	Installments  int
	Lines         []SaleLine
}

// SaleService handles business logic related to sales.
type SaleService struct {
	repo      repositories.SaleRepository
	publisher SaleEventPublisher
}

// NewSaleService creates a new SaleService. publisher may be nil.
func NewSaleService(repo repositories.SaleRepository, publisher SaleEventPublisher) *SaleService {
	return &SaleService{
		repo:      repo,
		publisher: publisher,
	}
}

// SaleTotal sums the line prices.
func SaleTotal(lines []SaleLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Price
	}
	return total
}

func (in SaleInput) toSale(id uint) *models.Sale {
	installments := in.Installments
	if installments < 1 {
		installments = 1
	}
	items := make([]models.SaleItem, 0, len(in.Lines))
	for _, l := range in.Lines {
		items = append(items, models.SaleItem{ProductID: l.ProductID, Price: l.Price, SaleID: id})
	}
	return &models.Sale{
		ID:            id,
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		Date:          in.Date,
		Status:        in.Status,
		Notes:         in.Notes,
		PaymentMethod: in.PaymentMethod,
		Installments:  installments,
		Total:         SaleTotal(in.Lines),
		Items:         items,
	}
}

func (s *SaleService) GetAllSales() ([]models.Sale, error) {
	return s.repo.GetAll()
}

func (s *SaleService) GetSaleByID(id uint) (*models.Sale, error) {
	return s.repo.GetByID(id)
}

// CreateSale stores a sale. The total is computed from the line prices
// and never taken from the client.
func (s *SaleService) CreateSale(in SaleInput) (*models.Sale, error) {
	sale := in.toSale(0)
	if err := s.repo.Create(sale); err != nil {
		return nil, err
	}
	s.publish(SaleCreated, sale)
	return sale, nil
}

// UpdateSale updates a sale. With at least one line the items are
// replaced and the total recomputed; without lines only the sale fields change.
func (s *SaleService) UpdateSale(id uint, in SaleInput) (*models.Sale, error) {
	sale := in.toSale(id)
	if err := s.repo.Update(sale, len(in.Lines) > 0); err != nil {
		return nil, err
	}
	s.publish(SaleUpdated, sale)
	return sale, nil
}

func (s *SaleService) DeleteSale(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(SaleDeleted, &models.Sale{ID: id})
	return nil
}

func (s *SaleService) CountSales() (int64, error) {
	return s.repo.Count()
}

func (s *SaleService) RecentSales() ([]models.Sale, error) {
	return s.repo.Recent(RecentLimit)
}

// Revenue returns the sum of all sale totals, in cents.
func (s *SaleService) Revenue() (int64, error) {
	return s.repo.Revenue()
}

func (s *SaleService) publish(event string, sale *models.Sale) {
	if s.publisher == nil {
		log.Debugf("No sale event publisher configured, skipping %s", event)
		return
	}
	payload := map[string]interface{}{
		"saleID": sale.ID,
		"status": sale.Status,
		"total":  sale.Total,
		"items":  len(sale.Items),
	}
	if err := s.publisher.PublishSaleEvent(event, payload); err != nil {
		log.WithError(err).Warnf("Failed to publish %s event for sale %d", event, sale.ID)
		return
	}
	log.Debugf("Published %s event for sale %d", event, sale.ID)
}

