package purchase

import "log/slog"

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

// RecordPurchase creates the header, its line items and the stock
// decrements in one store transaction. The total is computed server-side
// from the line items rather than trusted from the client.
func (s *Service) RecordPurchase(employeeID int64, dto CreatePurchaseDTO) (*Purchase, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var total float64
	items := make([]*PurchaseItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		total += float64(item.Quantity) * item.UnitPrice
		items = append(items, &PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	p := &Purchase{
		EmployeeID: employeeID,
		ClientID:   dto.ClientID,
		Total:      total,
		Status:     StatusPending,
		Items:      items,
	}

	if err := s.repo.CreatePurchase(p); err != nil {
		s.logger.Error("failed to record purchase", "error", err, "employee_id", employeeID, "client_id", dto.ClientID)
		return nil, err
	}

	s.logger.Info("purchase recorded",
		"purchase_id", p.ID,
		"employee_id", employeeID,
		"client_id", dto.ClientID,
		"total", total,
		"items", len(items))

	return p, nil
}

func (s *Service) GetByID(id int64) (*Purchase, error) {
	return s.repo.GetByID(id)
}

// Approve transitions a pending purchase to approved or rejected, exactly
// once. No stock effect: stock moved when the purchase was created.
func (s *Service) Approve(purchaseID int64, dto ApproveDTO, approverID int64) (*Purchase, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	status := StatusApproved
	if dto.Decision == "reject" {
		status = StatusRejected
	}

	if err := s.repo.SetStatus(purchaseID, status, approverID); err != nil {
		s.logger.Error("failed to set purchase status", "error", err, "purchase_id", purchaseID, "status", status)
		return nil, err
	}

	s.logger.Info("purchase status set", "purchase_id", purchaseID, "status", status, "approver_id", approverID)
	return s.repo.GetByID(purchaseID)
}

// RecordReturn validates the return against the cumulative quantity already
// returned for the line item and restores stock, in one transaction.
func (s *Service) RecordReturn(dto CreateReturnDTO) (*Return, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ret := &Return{
		PurchaseID: dto.PurchaseID,
		ProductID:  dto.ProductID,
		Quantity:   dto.Quantity,
		Reason:     dto.Reason,
	}

	if err := s.repo.CreateReturn(ret); err != nil {
		s.logger.Error("failed to record return", "error", err, "purchase_id", dto.PurchaseID, "product_id", dto.ProductID)
		return nil, err
	}

	s.logger.Info("return recorded",
		"return_id", ret.ID,
		"purchase_id", dto.PurchaseID,
		"product_id", dto.ProductID,
		"quantity", dto.Quantity)

	return ret, nil
}

func (s *Service) ListForEmployee(employeeID int64) ([]*Purchase, error) {
	return s.repo.ListForEmployee(employeeID)
}

func (s *Service) ListAll() ([]*Purchase, error) {
	return s.repo.ListAll()
}

func (s *Service) ListPending() ([]*Purchase, error) {
	return s.repo.ListPending()
}

func (s *Service) Stats() ([]*EmployeeStats, error) {
	return s.repo.StatsPerEmployee()
}

func (s *Service) ListReturns() ([]*Return, error) {
	return s.repo.ListReturns()
}
