package dossier

import (
	"context"
	"encoding/json"
	"fmt"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/websearch"
)

// LLMRenderer asks a generative model to write the structured sales
// narrative. The role instruction is fixed; the collected bundle goes in
// as JSON context.
type LLMRenderer struct {
	Client  *websearch.Client
	Model   string // narrative model, distinct from the search model
	Product string // what we sell, for the sales-tactics section
}

func (r *LLMRenderer) Render(ctx context.Context, bundle domain.DossierBundle) (string, error) {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", err
	}

	res, err := r.Client.Complete(ctx, r.Model, r.rolePrompt(), userPrompt(string(data)), "render")
	if err != nil {
		return "", err
	}

	// the renderer wants prose, so the raw-text "fallback" is actually
	// the success path here
	if res.ParseErr {
		return res.Raw, nil
	}

	// model obeyed the JSON-only habit of the search role; dig the text out
	if doc, ok := res.Data["dossier"].(string); ok && doc != "" {
		return doc, nil
	}
	return "", fmt.Errorf("render: model returned JSON without a dossier field")
}

func (r *LLMRenderer) rolePrompt() string {
	return fmt.Sprintf(`Ты - эксперт по B2B продажам с 15-летним опытом.

Твоя задача: создать детальное досье компании для менеджера по продажам.

Наш продукт: %s

Цель досье: помочь менеджеру выбрать правильную тактику продаж и подготовиться к контакту с компанией.

ВАЖНО:
- Будь конкретным и практичным
- Фокусируйся на действиях, а не общих фразах
- Учитывай размер бизнеса при рекомендациях
- Выделяй ключевые точки входа и контакты

ФОРМАТИРОВАНИЕ ССЫЛОК (BB-code чата):
- Все URL делай кликабельными: [URL=https://example.com]Текст ссылки[/URL]
- Email: [URL=mailto:email@company.ru]email@company.ru[/URL]

Формат ответа - структурированное досье с эмодзи для наглядности и кликабельными ссылками.`, r.Product)
}

func userPrompt(bundleJSON string) string {
	return fmt.Sprintf(`Создай досье компании на основе собранных данных:

%s

Обязательные разделы, в этом порядке:

📋 ДОСЬЕ КОМПАНИИ - название, адрес, директор, статус и дата регистрации
📊 МАСШТАБ БИЗНЕСА - оборот, сотрудники, динамика, категория
🌐 ОНЛАЙН-ПРИСУТСТВИЕ - сайт, соцсети, телефоны, email
👥 КЛЮЧЕВЫЕ ЛИЦА - найденные руководители с контактами (если никого нет - директор из реестра)
💼 ЧЕМ ЗАНИМАЮТСЯ - деятельность, продукты, целевая аудитория
💻 ТЕХНОЛОГИИ - CRM, ERP, стек
📰 ПОСЛЕДНИЕ НОВОСТИ - 5-7 новостей с датами и ссылками
🎪 ВЫСТАВКИ И МЕРОПРИЯТИЯ - прошедшие, награды, предстоящие
🎯 ВАЖНО ДЛЯ ПРОДАЖИ - на что сделать акцент, что учесть

Для каждого раздела без данных пиши "не найдено" - не выдумывай.
Разделяй разделы строкой ═══════════════════════════════════.`, bundleJSON)
}
