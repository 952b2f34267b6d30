package product

type CreateProductDTO struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Size        string  `json:"size"`
	Barcode     string  `json:"barcode"`
	GeneralCode string  `json:"general_code"`
	ImagePath   string  `json:"image_path"`
	MinStock    int     `json:"min_stock"`
	MaxStock    int     `json:"max_stock"`
}

// UpdateProductDTO uses pointers so absent fields leave the stored value
// untouched. Stock is deliberately not updatable here.
type UpdateProductDTO struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Size        *string  `json:"size"`
	Barcode     *string  `json:"barcode"`
	GeneralCode *string  `json:"general_code"`
	ImagePath   *string  `json:"image_path"`
	MinStock    *int     `json:"min_stock"`
	MaxStock    *int     `json:"max_stock"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateProductDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Price < 0 {
		return ValidationError{Msg: "price must not be negative"}
	}
	if d.Stock < 0 {
		return ValidationError{Msg: "stock must not be negative"}
	}
	if d.Barcode == "" {
		return ValidationError{Msg: "barcode is required"}
	}
	if d.GeneralCode == "" {
		return ValidationError{Msg: "general_code is required"}
	}
	if d.MinStock < 0 || d.MaxStock < 0 {
		return ValidationError{Msg: "stock thresholds must not be negative"}
	}
	if d.MaxStock > 0 && d.MinStock > d.MaxStock {
		return ValidationError{Msg: "min_stock must not exceed max_stock"}
	}
	return nil
}

func (d UpdateProductDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return ValidationError{Msg: "name must not be empty"}
	}
	if d.Price != nil && *d.Price < 0 {
		return ValidationError{Msg: "price must not be negative"}
	}
	if d.Barcode != nil && *d.Barcode == "" {
		return ValidationError{Msg: "barcode must not be empty"}
	}
	return nil
}
