package utils

// PaiseToRupees converts a stored paise amount to rupees for display.
func PaiseToRupees(paise int64) float64 {
	return float64(paise) / 100
}
