package checklist

// IconName is the symbolic key stored in raw data.
type IconName string

// Icon is the resolved, renderable handle the UI consumes. Resolution is a
// closed lookup rather than open-ended string keying; unknown names always
// degrade to the shield.
type Icon string

const (
	IconShield   Icon = "shield"
	IconLock     Icon = "lock"
	IconKey      Icon = "key"
	IconGlobe    Icon = "globe"
	IconServer   Icon = "server"
	IconUsers    Icon = "users"
	IconDocument Icon = "document"
	IconEye      Icon = "eye"
	IconCloud    Icon = "cloud"
	IconAlert    Icon = "alert"
	IconBuilding Icon = "building"
	IconWrench   Icon = "wrench"
)

var iconTable = map[IconName]Icon{
	"ShieldIcon":   IconShield,
	"LockIcon":     IconLock,
	"KeyIcon":      IconKey,
	"GlobeIcon":    IconGlobe,
	"ServerIcon":   IconServer,
	"UsersIcon":    IconUsers,
	"DocumentIcon": IconDocument,
	"EyeIcon":      IconEye,
	"CloudIcon":    IconCloud,
	"AlertIcon":    IconAlert,
	"BuildingIcon": IconBuilding,
	"WrenchIcon":   IconWrench,
}

// ResolveIcon maps a symbolic icon name to its renderable handle.
// Unresolvable names fall back to the default shield; this never fails.
func ResolveIcon(name IconName) Icon {
	if icon, ok := iconTable[name]; ok {
		return icon
	}
	return IconShield
}

// KnownIconNames lists the accepted symbolic keys, for admin entry forms.
func KnownIconNames() []IconName {
	names := make([]IconName, 0, len(iconTable))
	for name := range iconTable {
		names = append(names, name)
	}
	return names
}
