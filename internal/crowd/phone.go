package crowd

import "strings"

// internationalPrefix - признак номера в международном формате
const internationalPrefix = "+"

// HasInternationalPrefix сообщает, начинается ли номер с "+"
func HasInternationalPrefix(phone string) bool {
	return strings.HasPrefix(strings.TrimSpace(phone), internationalPrefix)
}

// NormalizePhone добавляет код страны к номеру без международного префикса.
// Номера с префиксом возвращаются без изменений, поэтому повторная нормализация ничего не меняет.
func NormalizePhone(phone, countryPrefix string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || HasInternationalPrefix(phone) {
		return phone
	}
	return countryPrefix + phone
}
