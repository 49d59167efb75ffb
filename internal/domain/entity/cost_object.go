package entity

// CostObjectCategory is how a line item's cost is charged
type CostObjectCategory string

const (
	CategoryCostCenter     CostObjectCategory = "COST_CENTER"
	CategoryOrderOperation CostObjectCategory = "ORDER_OPERATION"
	CategoryProject        CostObjectCategory = "PROJECT"
)

// AccountCategory returns the ERP account assignment category code
func (c CostObjectCategory) AccountCategory() string {
	switch c {
	case CategoryCostCenter:
		return "K"
	case CategoryOrderOperation:
		return "N"
	case CategoryProject:
		return "P"
	default:
		return ""
	}
}

func (c CostObjectCategory) String() string {
	return string(c)
}

const (
	costCenterLength = 7
	orderIDLength    = 10
	operationLength  = 4
)

// CostObject is a classified cost-object code with its assignment target
type CostObject struct {
	Category   CostObjectCategory
	Code       string
	CostCenter string
	OrderID    string
	Operation  string
	PositionID string
}

// Classify maps a raw cost-object code to its category.
// Order matters: a 7-character code is a cost center even when it starts with '1'.
func Classify(code string) (CostObject, error) {
	if code == "" {
		return CostObject{}, &ValidationError{RowIndex: -1, Code: code, Reason: "empty cost object code"}
	}

	if isCostCenter(code) {
		return CostObject{Category: CategoryCostCenter, Code: code, CostCenter: code}, nil
	}

	if code[0] == '1' {
		if len(code) < orderIDLength+operationLength {
			return CostObject{}, &ValidationError{
				RowIndex: -1,
				Code:     code,
				Reason:   "order/operation code shorter than 14 characters",
			}
		}
		return CostObject{
			Category:  CategoryOrderOperation,
			Code:      code,
			OrderID:   code[:orderIDLength],
			Operation: code[len(code)-operationLength:],
		}, nil
	}

	return CostObject{Category: CategoryProject, Code: code, PositionID: code}, nil
}

// isCostCenter reports whether code is a 7-character cost center. Cost
// centers start with a digit; 7-character project positions such as
// "PROJ-99" do not. A leading '1' never makes a 7-character code an order.
func isCostCenter(code string) bool {
	return len(code) == costCenterLength && code[0] >= '0' && code[0] <= '9'
}

// ClassifyRow classifies a row's cost object and stamps the row index on validation errors
func ClassifyRow(row DataRow) (CostObject, error) {
	co, err := Classify(row.CostObjectCode)
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.RowIndex = row.Index
		}
		return CostObject{}, err
	}
	return co, nil
}
