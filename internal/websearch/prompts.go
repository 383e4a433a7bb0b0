package websearch

import (
	"fmt"
	"strings"
	"time"
)

func companyPrompt(query string) string {
	return fmt.Sprintf(`Найди РОССИЙСКУЮ компанию или ИП по запросу: "%s"

ВАЖНО: Ищи ТОЛЬКО в российских источниках (сайты .ru, российские соцсети, российские базы данных)

Если это ИНН (10 или 12 цифр) - найди компанию по этому ИНН в российских реестрах.
Если это название - найди компанию работающую в России.

Верни ТОЛЬКО JSON без дополнительного текста:
{
    "found": true,
    "variants": [
        {
            "name": "Полное название компании или ИП",
            "short_name": "Краткое коммерческое название",
            "inn": "ИНН (10 или 12 цифр, обязательно!)",
            "website": "https://... (если известен)",
            "confidence": 0.95,
            "description": "Краткое описание деятельности"
        }
    ]
}

Если найдено несколько компаний - верни топ-5 самых релевантных, отсортированных по confidence.
Если точное совпадение - верни только его.
ОБЯЗАТЕЛЬНО укажи ИНН для каждого варианта!`, query)
}

func presencePrompt(name, taxID string) string {
	return fmt.Sprintf(`Найди онлайн-присутствие российской компании %s%s:

1. Официальный сайт (полный URL)
2. Страница ВКонтакте (полный URL)
3. Telegram канал (полный URL, формат t.me/...)
4. YouTube канал (полный URL)
5. Другие социальные сети (если есть)

Верни ТОЛЬКО JSON без дополнительного текста:
{
    "website": "https://...",
    "vk": "https://vk.com/...",
    "telegram": "https://t.me/...",
    "youtube": "https://youtube.com/...",
    "other": ["https://..."]
}

Если что-то не найдено, используй null.`, name, taxIDPart(taxID))
}

func executivesPrompt(name string) string {
	return fmt.Sprintf(`Найди ключевых публичных лиц компании "%s" - людей которые представляют компанию:

ПРИОРИТЕТНЫЕ ДОЛЖНОСТИ: генеральный директор, коммерческий директор,
финансовый директор, IT-директор, директор по маркетингу, руководитель
отдела продаж, основатель (если публичный).

Для каждого человека собери ФИО, должность, публичные контакты и профили.

Верни ТОЛЬКО JSON без дополнительного текста:
{
    "executives": [
        {
            "name": "ФИО",
            "position": "Должность",
            "email": "email@company.ru",
            "phone": "+7...",
            "linkedin": "https://linkedin.com/in/...",
            "tenchat": "https://tenchat.ru/...",
            "vk": "https://vk.com/...",
            "telegram": "@username",
            "bio": "Краткая справка"
        }
    ]
}

Найди минимум 3-5 ключевых лиц, максимум 10.
Если информация не найдена, используй null для полей.`, name)
}

func businessPrompt(name, taxID string) string {
	return fmt.Sprintf(`Найди детальную бизнес-информацию о компании "%s"%s:

1. ФИНАНСЫ И МАСШТАБ: годовой оборот в рублях, динамика, прибыль,
   количество сотрудников, размер компании (малый/средний/крупный).
2. ДЕЯТЕЛЬНОСТЬ: основные продукты или услуги, целевая аудитория
   (B2B/B2C/B2G), крупнейшие клиенты, отрасль, география работы.
3. ТЕХНОЛОГИИ: CRM, ERP, системы автоматизации, технологический стек.

Верни ТОЛЬКО JSON без дополнительного текста:
{
    "finances": {
        "revenue_yearly_rub": "число или диапазон",
        "revenue_monthly_rub": "...",
        "revenue_source": "откуда данные",
        "revenue_year": "2025",
        "profit": "...",
        "employees_count": "число или диапазон",
        "company_size": "малый/средний/крупный",
        "growth_trend": "растет/стабильно/падает"
    },
    "business": {
        "products": ["список продуктов/услуг"],
        "target_audience": "B2B/B2C/B2G",
        "major_clients": ["список клиентов"],
        "industry": "отрасль",
        "geography": ["регионы работы"],
        "market_share": "..."
    },
    "technologies": {
        "crm": "название CRM",
        "erp": "название ERP",
        "automation": ["другие системы"],
        "tech_stack": ["технологии"]
    }
}

ОСОБЕННО ВАЖНО найти оборот - проверь все возможные источники!`, name, taxIDPart(taxID))
}

// newsPrompt bounds the search to a rolling window around now: past items
// from the last six months, upcoming ones within the next six.
func newsPrompt(name, taxID, industry string, now time.Time) string {
	since := now.AddDate(0, -6, 0).Format("January 2006")
	until := now.AddDate(0, 6, 0).Format("January 2006")

	industryPart := ""
	if industry != "" {
		industryPart = fmt.Sprintf("\nОтрасль компании: %s - ищи также отраслевые выставки и конференции.", industry)
	}

	return fmt.Sprintf(`Найди новости и мероприятия компании "%s"%s.%s

ВРЕМЕННЫЕ РАМКИ:
- Прошедшие новости и мероприятия: только с %s по настоящее время
- Предстоящие мероприятия: только до %s

Собери:
1. 5-7 последних значимых новостей (с датами и ссылками)
2. Выставки где компания участвовала (экспонент/посетитель)
3. Конференции и форумы (с именами спикеров)
4. Награды и рейтинги
5. Предстоящие мероприятия где компания заявлена

Верни ТОЛЬКО JSON без дополнительного текста:
{
    "news": [
        {"date": "YYYY-MM", "title": "заголовок", "source_url": "https://...", "source_name": "источник"}
    ],
    "exhibitions": [{"date": "YYYY-MM", "name": "название", "role": "экспонент", "url": "https://..."}],
    "conferences": [{"date": "YYYY-MM", "name": "название", "role": "спикер: ФИО", "url": "https://..."}],
    "awards": [{"date": "YYYY", "name": "награда/рейтинг", "role": "позиция", "url": "https://..."}],
    "upcoming_events": [{"date": "YYYY-MM", "name": "название", "role": "тип", "url": "https://..."}],
    "media_activity_score": "высокая/средняя/низкая"
}

Если данных нет - используй пустые списки.`, name, taxIDPart(taxID), industryPart, since, until)
}

func taxIDPart(taxID string) string {
	if strings.TrimSpace(taxID) == "" {
		return ""
	}
	return fmt.Sprintf(" (ИНН: %s)", taxID)
}
