package models

// CategoryChoice is one entry of the fixed category enumeration shared by
// transactions and budgets.
type CategoryChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CategoryChoices is the closed set of categories, in the order clients
// render them. Labels are the Thai display strings and must not change.
var CategoryChoices = []CategoryChoice{
	{Value: "food", Label: "อาหาร"},
	{Value: "transport", Label: "เดินทาง"},
	{Value: "shopping", Label: "ช้อปปิ้ง"},
	{Value: "health", Label: "สุขภาพ"},
	{Value: "education", Label: "การศึกษา"},
	{Value: "bills", Label: "ค่าน้ำค่าไฟ"},
	{Value: "entertainment", Label: "บันเทิง"},
	{Value: "savings", Label: "ออมเงิน"},
	{Value: "salary", Label: "เงินเดือน"},
	{Value: "others", Label: "อื่นๆ"},
}

func IsValidCategory(value string) bool {
	for _, c := range CategoryChoices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// CategoryLabel returns the display label for a category code, or the code
// itself when it is not part of the enumeration.
func CategoryLabel(value string) string {
	for _, c := range CategoryChoices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
