package research

import "fmt"

func msgAck(label string) string {
	return fmt.Sprintf("Принял запрос «%s». Собираю досье, это может занять пару минут.", label)
}

func msgNotFound(label string) string {
	return fmt.Sprintf("Не удалось однозначно определить компанию по запросу «%s».\n"+
		"Попробуйте уточнить: укажите ИНН (10 или 12 цифр) или адрес сайта компании.", label)
}

func msgFailure(label string) string {
	return fmt.Sprintf("Не получилось собрать досье по запросу «%s» из-за технической ошибки. Попробуйте ещё раз чуть позже.", label)
}
