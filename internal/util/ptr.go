package util

import "github.com/shopspring/decimal"

func StringPtr(v string) *string { return &v }

func DecimalPtr(v decimal.Decimal) *decimal.Decimal { return &v }

func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
