package verification

import "github.com/m04kA/SMC-PoolBooking/internal/domain"

// Outcome результат отправки кода
type Outcome string

const (
	// OutcomeVerified CRM выдала pass_token
	OutcomeVerified Outcome = "verified"
	// OutcomeRejected код неверный, его повтор заблокирован
	OutcomeRejected Outcome = "rejected"
	// OutcomeDropped отправка отброшена без сетевого вызова (повтор, проверка уже идет)
	OutcomeDropped Outcome = "dropped"
)

// MsgInvalidCode сообщение пользователю при неверном коде
const MsgInvalidCode = "неверный код"

// VerifyResult результат VerifyCode
type VerifyResult struct {
	Outcome Outcome
	Session *domain.VerificationSession // nil, если сессию не удалось прочитать (Dropped)
	Message string
}
