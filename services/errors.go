package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrVenueNotFound      = errors.New("venue not found")

	// Ошибки формы запроса (batch is not a well-formed list of placements)
	ErrScheduleBatchEmpty          = errors.New("schedule batch must contain at least one placement")
	ErrScheduleBatchDuplicateMatch = errors.New("schedule batch names the same match more than once")

	// Референциальные ошибки
	ErrScheduleMatchNotInTournament = errors.New("match does not belong to the tournament")
	ErrSchedulePitchUnknown         = errors.New("pitch does not exist")

	// Ошибки инфраструктуры
	ErrScheduleApplyFailed  = errors.New("failed to apply schedule batch")
	ErrUploadsNotConfigured = errors.New("file uploads are not configured")
	ErrVenueMapUploadFailed = errors.New("failed to upload venue map")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
)
