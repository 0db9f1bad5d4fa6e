package quotation

import "time"

// Request is a validated quotation request ready to be submitted.
type Request struct {
	ID          string
	UserID      string
	PlanIDs     []int64
	Comments    string
	RequestedAt time.Time
}

// Receipt is the collaborator's answer to a submission.
type Receipt struct {
	Accepted       bool
	Message        string
	DeliveryTarget string
}

// Result is what the caller shows the user after a quotation attempt.
type Result struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RequestID      string `json:"requestId,omitempty"`
	DeliveryTarget string `json:"deliveryTarget,omitempty"`
}

// Notification is the payload sent to the quotation webhook.
type Notification struct {
	RequestID      string    `json:"requestId"`
	UserID         string    `json:"userId"`
	PlanIDs        []int64   `json:"planIds"`
	Comments       string    `json:"comments,omitempty"`
	DeliveryTarget string    `json:"deliveryTarget"`
	RequestedAt    time.Time `json:"requestedAt"`
}

const (
	MsgEmptySelection  = "Selecciona al menos un plan para cotizar"
	MsgUnauthenticated = "Debes iniciar sesión para solicitar una cotización"
	MsgSubmitFailed    = "No se pudo enviar la solicitud de cotización. Intenta nuevamente."
	MsgRejected        = "La solicitud de cotización no fue aceptada"
)
