package shroud

// MaskType names one of the supported masking algorithms.
// Use these constants in struct tags: `mask:"mobile_phone"`
type MaskType string

const (
	// MaskChineseName keeps the first character: 李小龙 -> 李**
	MaskChineseName MaskType = "chinese_name"

	// MaskIDCard keeps the first and last characters: 110101199003074518 -> 1****************8
	MaskIDCard MaskType = "id_card"

	// MaskFixedPhone keeps the last four characters: 01086551122 -> *******1122
	MaskFixedPhone MaskType = "fixed_phone"

	// MaskMobilePhone keeps the first three and last four characters: 13512346810 -> 135****6810
	MaskMobilePhone MaskType = "mobile_phone"

	// MaskAddress masks the trailing seven characters.
	MaskAddress MaskType = "address"

	// MaskEmail keeps the first character of the local part and the domain: daniel@126.com -> d*****@126.com
	MaskEmail MaskType = "email"

	// MaskBankCard keeps the first four and last three characters: 6217000012340567 -> 6217*********567
	MaskBankCard MaskType = "bank_card"

	// MaskSecretNum masks the digits of a numeric literal: 10000.05 -> 1****.05
	MaskSecretNum MaskType = "secret_num"
)

// AddressSensitiveSize is the number of trailing characters MaskAddress hides.
const AddressSensitiveSize = 7

// validMaskTypes contains all valid mask types for tag validation.
var validMaskTypes = map[MaskType]bool{
	MaskChineseName: true,
	MaskIDCard:      true,
	MaskFixedPhone:  true,
	MaskMobilePhone: true,
	MaskAddress:     true,
	MaskEmail:       true,
	MaskBankCard:    true,
	MaskSecretNum:   true,
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}

// MaskTypes returns every supported mask type in declaration order.
func MaskTypes() []MaskType {
	return []MaskType{
		MaskChineseName,
		MaskIDCard,
		MaskFixedPhone,
		MaskMobilePhone,
		MaskAddress,
		MaskEmail,
		MaskBankCard,
		MaskSecretNum,
	}
}
