package product

import (
	"log/slog"
	"time"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Product{
		Name:        dto.Name,
		Price:       dto.Price,
		Stock:       dto.Stock,
		Category:    dto.Category,
		Size:        dto.Size,
		Barcode:     dto.Barcode,
		GeneralCode: dto.GeneralCode,
		ImagePath:   dto.ImagePath,
		MinStock:    dto.MinStock,
		MaxStock:    dto.MaxStock,
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create product", "error", err, "barcode", dto.Barcode)
		return nil, err
	}

	s.logger.Info("product created", "product_id", p.ID, "name", p.Name, "stock", p.Stock)
	return p, nil
}

func (s *Service) List() ([]*Product, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int64) (*Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByBarcode(barcode string) (*Product, error) {
	if barcode == "" {
		return nil, ValidationError{Msg: "barcode is required"}
	}
	return s.repo.GetByBarcode(barcode)
}

func (s *Service) Update(id int64, dto UpdateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Price != nil {
		p.Price = *dto.Price
	}
	if dto.Category != nil {
		p.Category = *dto.Category
	}
	if dto.Size != nil {
		p.Size = *dto.Size
	}
	if dto.Barcode != nil {
		p.Barcode = *dto.Barcode
	}
	if dto.GeneralCode != nil {
		p.GeneralCode = *dto.GeneralCode
	}
	if dto.ImagePath != nil {
		p.ImagePath = *dto.ImagePath
	}
	if dto.MinStock != nil {
		p.MinStock = *dto.MinStock
	}
	if dto.MaxStock != nil {
		p.MaxStock = *dto.MaxStock
	}

	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update product", "error", err, "product_id", id)
		return nil, err
	}

	s.logger.Info("product updated", "product_id", id)
	return p, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

// LowStockAlerts lists products whose stock fell below their minimum
// threshold.
func (s *Service) LowStockAlerts() ([]*LowStockAlert, error) {
	products, err := s.repo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}

	alerts := make([]*LowStockAlert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, &LowStockAlert{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
		})
	}
	return alerts, nil
}

// RecordLowStockAlert opens an alert row when the product sits below its
// minimum. Returns nil without error when stock is still healthy.
func (s *Service) RecordLowStockAlert(productID, purchaseID int64) (*InventoryAlert, error) {
	p, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if p.Stock >= p.MinStock {
		return nil, nil
	}

	alert := &InventoryAlert{
		ProductID:   p.ID,
		ProductName: p.Name,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		PurchaseID:  purchaseID,
	}
	if err := s.repo.CreateAlert(alert); err != nil {
		s.logger.Error("failed to persist inventory alert", "error", err, "product_id", p.ID)
		return nil, err
	}

	return alert, nil
}

// ResolveRecoveredAlerts closes open alerts for a product once its stock is
// back at or above the minimum. Returns how many alerts were resolved.
func (s *Service) ResolveRecoveredAlerts(productID int64) (int64, error) {
	p, err := s.repo.GetByID(productID)
	if err != nil {
		return 0, err
	}

	if p.Stock < p.MinStock {
		return 0, nil
	}

	resolved, err := s.repo.ResolveAlerts(p.ID, time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to resolve inventory alerts", "error", err, "product_id", p.ID)
		return 0, err
	}
	return resolved, nil
}

func (s *Service) AlertHistory() ([]*InventoryAlert, error) {
	return s.repo.ListAlerts()
}
