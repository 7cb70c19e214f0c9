package board

const (
	inlineKeyboardGap     = "Diferencia"
	inlineKeyboardBest    = "Mejores"
	inlineKeyboardLast    = "Última"
	inlineKeyboardSectors = "Sectores"
	inlineKeyboardPits    = "Paradas"
	inlineKeyboardInfo    = "Info"

	symbolTimes  = "⏱"
	symbolDiff   = "⏲️"
	symbolLaps   = "🏁"
	symbolPits   = "🛞"
	symbolSort   = "↕️"
	symbolPlay   = "▶️"
	symbolPause  = "⏸"
	symbolFinish = "🏁"
	symbolPrev   = "⏮"
	symbolNext   = "⏭"
	symbolMode   = "🔄"

	tableDriver = "PIL"
)
