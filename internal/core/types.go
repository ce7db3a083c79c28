package core

const (
	BotName      = "AiLEAN"
	BotVersion   = "0.1.0"
	BotUserAgent = BotName + "/" + BotVersion
)

// Equipment identifies the piece of equipment a manual belongs to.
type Equipment struct {
	ID   int64  `json:"equipment_id"`
	Name string `json:"equipment_name"`
}

// Turn is one answered question. Values are never modified after creation.
type Turn struct {
	User  string `json:"user"`
	Reply string `json:"reply"`
}
