package purchase

type PurchaseItemDTO struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreatePurchaseDTO struct {
	ClientID int64             `json:"client_id"`
	Items    []PurchaseItemDTO `json:"items"`
}

type ApproveDTO struct {
	Decision string `json:"decision"` // approve | reject
}

type CreateReturnDTO struct {
	PurchaseID int64  `json:"purchase_id"`
	ProductID  int64  `json:"product_id"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreatePurchaseDTO) Validate() error {
	if d.ClientID <= 0 {
		return ValidationError{Msg: "client_id is required"}
	}
	if len(d.Items) == 0 {
		return ValidationError{Msg: "at least one line item is required"}
	}
	for _, item := range d.Items {
		if item.ProductID <= 0 {
			return ValidationError{Msg: "product_id is required for every line item"}
		}
		if item.Quantity <= 0 {
			return ValidationError{Msg: "quantity must be positive"}
		}
		if item.UnitPrice < 0 {
			return ValidationError{Msg: "unit_price must not be negative"}
		}
	}
	return nil
}

func (d ApproveDTO) Validate() error {
	if d.Decision != "approve" && d.Decision != "reject" {
		return ValidationError{Msg: "decision must be approve or reject"}
	}
	return nil
}

func (d CreateReturnDTO) Validate() error {
	if d.PurchaseID <= 0 {
		return ValidationError{Msg: "purchase_id is required"}
	}
	if d.ProductID <= 0 {
		return ValidationError{Msg: "product_id is required"}
	}
	if d.Quantity <= 0 {
		return ValidationError{Msg: "quantity must be positive"}
	}
	return nil
}
