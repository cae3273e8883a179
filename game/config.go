package game

// Panel layout
const (
	paramsPanelWidth   = 220
	controlsPanelWidth = 200
	inspectorWidth     = 200
	inspectorHeight    = 180
	perfPanelY         = 100
)

// controlsLegend is the key help shown at the bottom of the screen.
const controlsLegend = "[Space] pause  [</>] speed  [Tab] params  [O] overlays  [P] perf  " +
	"[C] consistency  [B] grid  [N] reset  [S] snapshot  [Home] camera"
