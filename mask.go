package shroud

import (
	"strings"
)

// MaskChar is the character substituted for every hidden position.
const MaskChar = '*'

// Masker applies one positional masking rule.
type Masker interface {
	// Mask applies masking to the value.
	Mask(value string) string
}

// MaskerFunc adapts a plain function to the Masker interface.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string {
	return f(value)
}

// chineseNameMasker keeps the first character: 李小龙 -> 李**
type chineseNameMasker struct{}

// ChineseNameMasker returns a masker for personal names.
func ChineseNameMasker() Masker {
	return &chineseNameMasker{}
}

func (m *chineseNameMasker) Mask(value string) string {
	return ChineseName(value)
}

// idCardMasker keeps the first and last characters.
type idCardMasker struct{}

// IDCardMasker returns a masker for identity card numbers.
func IDCardMasker() Masker {
	return &idCardMasker{}
}

func (m *idCardMasker) Mask(value string) string {
	return IDCard(value)
}

// fixedPhoneMasker keeps the last four characters.
type fixedPhoneMasker struct{}

// FixedPhoneMasker returns a masker for landline numbers.
func FixedPhoneMasker() Masker {
	return &fixedPhoneMasker{}
}

func (m *fixedPhoneMasker) Mask(value string) string {
	return FixedPhone(value)
}

// mobilePhoneMasker keeps the first three and last four characters.
type mobilePhoneMasker struct{}

// MobilePhoneMasker returns a masker for mobile numbers.
func MobilePhoneMasker() Masker {
	return &mobilePhoneMasker{}
}

func (m *mobilePhoneMasker) Mask(value string) string {
	return MobilePhone(value)
}

// addressMasker hides the trailing sensitive characters.
type addressMasker struct {
	sensitive int
}

// AddressMasker returns a masker that hides the last n characters of an address.
func AddressMasker(n int) Masker {
	return &addressMasker{sensitive: n}
}

func (m *addressMasker) Mask(value string) string {
	return Address(value, m.sensitive)
}

// emailMasker keeps the first character of the local part and the domain.
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
func EmailMasker() Masker {
	return &emailMasker{}
}

func (m *emailMasker) Mask(value string) string {
	return Email(value)
}

// bankCardMasker keeps the first four and last three characters.
type bankCardMasker struct{}

// BankCardMasker returns a masker for bank card numbers.
func BankCardMasker() Masker {
	return &bankCardMasker{}
}

func (m *bankCardMasker) Mask(value string) string {
	return BankCard(value)
}

// secretNumMasker hides the digits of a numeric literal.
type secretNumMasker struct{}

// SecretNumMasker returns a masker for amounts and other numeric secrets.
func SecretNumMasker() Masker {
	return &secretNumMasker{}
}

func (m *secretNumMasker) Mask(value string) string {
	return SecretNum(value)
}

// ChineseName keeps the first character and masks the rest, preserving length.
func ChineseName(fullName string) string {
	if isBlank(fullName) {
		return ""
	}
	r := []rune(fullName)
	return string(rightPad(left(r, 1), len(r)))
}

// IDCard keeps the first and last characters and masks everything between.
// A single character input comes back doubled.
func IDCard(id string) string {
	if isBlank(id) {
		return ""
	}
	r := []rune(id)
	tail := removeStart(leftPad(right(r, 1), len(r)), 1)
	return string(left(r, 1)) + string(tail)
}

// Account masks a virtual account number the same way as IDCard.
func Account(id string) string {
	return IDCard(id)
}

// FixedPhone keeps the last four characters and masks the rest.
func FixedPhone(num string) string {
	if isBlank(num) {
		return ""
	}
	r := []rune(num)
	return string(leftPad(right(r, 4), len(r)))
}

// MobilePhone keeps the first three and last four characters: 135****6810.
// Inputs shorter than seven characters come back with the first three
// characters prepended to the padded tail.
func MobilePhone(num string) string {
	if isBlank(num) {
		return ""
	}
	r := []rune(num)
	tail := removeStart(leftPad(right(r, 4), len(r)), 3)
	return string(left(r, 3)) + string(tail)
}

// Address keeps all but the last sensitiveSize characters and masks those.
func Address(address string, sensitiveSize int) string {
	if isBlank(address) {
		return ""
	}
	r := []rune(address)
	return string(rightPad(left(r, len(r)-sensitiveSize), len(r)))
}

// Email keeps the first character of the local part, the @ and the domain.
// Local parts of one character are returned unchanged.
func Email(email string) string {
	if isBlank(email) {
		return ""
	}
	r := []rune(email)
	at := indexRune(r, '@')
	if at <= 1 {
		return email
	}
	return string(rightPad(left(r, 1), at)) + string(r[at:])
}

// BankCard keeps the first four and last three characters: 6217*********567.
func BankCard(cardNum string) string {
	if isBlank(cardNum) {
		return ""
	}
	r := []rune(cardNum)
	tail := removeStart(leftPad(right(r, 3), len(r)), 4)
	return string(left(r, 4)) + string(tail)
}

// Password replaces every character.
func Password(password string) string {
	if isBlank(password) {
		return ""
	}
	return strings.Repeat(string(MaskChar), len([]rune(password)))
}

// SecretNum masks the digits of a numeric literal.
//
//	10000.05 -> 1****.05
//	0.56     -> *.56
//	1234     -> ***4
//	123      -> 1**
func SecretNum(secretNum string) string {
	if isBlank(secretNum) {
		return ""
	}
	r := []rune(secretNum)
	var b strings.Builder

	if point := indexRune(r, '.'); point >= 0 {
		if point > 1 {
			b.WriteRune(r[0])
			b.WriteString(asterisks(point - 1))
		} else {
			b.WriteRune(MaskChar)
		}
		b.WriteString(string(r[point:]))
		return b.String()
	}

	if len(r) > 3 {
		b.WriteString(asterisks(len(r) - 1))
		b.WriteRune(r[len(r)-1])
		return b.String()
	}

	if len(r) == 1 {
		return string(MaskChar)
	}
	b.WriteRune(r[0])
	b.WriteString(asterisks(len(r) - 1))
	return b.String()
}

// isBlank reports whether s is empty or whitespace only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// asterisks returns n mask characters; n <= 0 yields "".
func asterisks(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(MaskChar), n)
}

func left(r []rune, n int) []rune {
	if n <= 0 {
		return nil
	}
	if n >= len(r) {
		return r
	}
	return r[:n]
}

func right(r []rune, n int) []rune {
	if n <= 0 {
		return nil
	}
	if n >= len(r) {
		return r
	}
	return r[len(r)-n:]
}

// leftPad pads r with mask characters on the left up to size.
func leftPad(r []rune, size int) []rune {
	if len(r) >= size {
		return r
	}
	out := make([]rune, 0, size)
	for i := len(r); i < size; i++ {
		out = append(out, MaskChar)
	}
	return append(out, r...)
}

// rightPad pads r with mask characters on the right up to size.
func rightPad(r []rune, size int) []rune {
	out := make([]rune, len(r), max(size, len(r)))
	copy(out, r)
	for i := len(r); i < size; i++ {
		out = append(out, MaskChar)
	}
	return out
}

// removeStart drops a leading run of exactly n mask characters, if present.
func removeStart(r []rune, n int) []rune {
	if len(r) < n {
		return r
	}
	for i := 0; i < n; i++ {
		if r[i] != MaskChar {
			return r
		}
	}
	return r[n:]
}

func indexRune(r []rune, c rune) int {
	for i, v := range r {
		if v == c {
			return i
		}
	}
	return -1
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskChineseName: ChineseNameMasker(),
		MaskIDCard:      IDCardMasker(),
		MaskFixedPhone:  FixedPhoneMasker(),
		MaskMobilePhone: MobilePhoneMasker(),
		MaskAddress:     AddressMasker(AddressSensitiveSize),
		MaskEmail:       EmailMasker(),
		MaskBankCard:    BankCardMasker(),
		MaskSecretNum:   SecretNumMasker(),
	}
}
