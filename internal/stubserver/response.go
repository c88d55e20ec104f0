package stubserver

// Формы ответов заглушки. Настоящий бэкенд непоследователен: успешные
// ответы обёрнуты в {"data": ...}, ошибки несут поле message, а список
// пользователей дополняется блоком meta. Заглушка повторяет это поведение,
// чтобы клиент упражнял все свои ветки нормализации.

type dataResponse struct {
	Data any `json:"data"`
}

type pagedResponse struct {
	Data any  `json:"data"`
	Meta meta `json:"meta"`
}

type meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type messageResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

func okResponse(data any) dataResponse {
	return dataResponse{Data: data}
}

func pagedOK(data any, total, page, limit int) pagedResponse {
	return pagedResponse{
		Data: data,
		Meta: meta{Total: total, Page: page, Limit: limit},
	}
}

func statusOK(msg string) messageResponse {
	return messageResponse{Status: "OK", Message: msg}
}

func errorResponse(msg string) messageResponse {
	return messageResponse{Message: msg}
}
