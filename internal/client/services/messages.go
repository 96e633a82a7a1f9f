package services

// User-facing notification texts.
const (
	msgPasswordTooShort = "Пароль должен быть не короче 8 символов"
	msgPasswordNoLetter = "Пароль должен содержать буквы"
	msgPasswordNoDigit  = "Пароль должен содержать цифры"

	msgNoToken          = "Не удалось получить токен"
	msgRegistered       = "Регистрация успешна"
	msgEmailTaken       = "Этот email уже зарегистрирован. Введите другой."
	msgLoggedIn         = "Вход выполнен"
	msgLoggedOut        = "Вы вышли из аккаунта"
	msgIdentityFmt      = "Вы вошли: %s"
	msgNotAuthenticated = "Не авторизован"

	msgPreviewSessionExpired = "Сессия истекла или нет входа. Войдите снова."
	msgPreviewForbidden      = "Нет доступа к файлу (только владелец)."
	msgPreviewUnsupported    = "Предпросмотр недоступен для этого типа файла."
	msgPreviewFailedPrefix   = "Ошибка предпросмотра: "
	msgPreviewBlocked        = "Разрешите всплывающие окна для предпросмотра"

	msgLoginFirst        = "Сначала войдите в аккаунт"
	msgSavedFmt          = "Файл сохранён: %s"
	msgActionUnavailable = "Действие недоступно для этого файла"
)
