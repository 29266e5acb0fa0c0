package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconHeart     = "\uf004" // heart
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconWrench  = "\uf0ad" // wrench

	IconConfig  = "\ue615" // config
	IconDesktop = "\uf108" // desktop
	IconEye     = "\uf06e" // eye
	IconCursor  = "\uf054" // chevron-right
	IconClock   = "\uf017" // clock
)
