package printer

import "github.com/spacebear01/osbc/internal/model"

// Printer knows how to print bot information in different formats.
type Printer interface {
	PrintBotList(bots []model.BotInfo) error
	PrintRunList(runs []model.Run) error
	PrintMessage(msg string) error
}
