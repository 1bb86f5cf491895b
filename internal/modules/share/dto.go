package share

// CreateShareRequest — параметры публикации списка. Снимок избранного
// берётся из серверной сессии пользователя, клиент задаёт только срок
// жизни ссылки (в днях, опционально).
type CreateShareRequest struct {
	ExpiresInDays *int `json:"expiresInDays" validate:"omitempty,min=1,max=365"`
}
