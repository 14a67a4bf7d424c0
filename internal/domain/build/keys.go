package build

// Perk keys the engine special-cases. These are catalog entries like any
// other option; the keys are stable across catalog languages/versions.
const (
	PerkSignaturePower      = "signature_power"
	PerkImpressiveCareer    = "impressive_career"
	PerkUnnervingAppearance = "unnerving_appearance"
	PerkSteelSkin           = "steel_skin"
	PerkMagicalBeast        = "magical_beast"
	PerkChatterbox          = "chatterbox"
	PerkManyTalents         = "many_talents"
	PerkInhumanForm         = "inhuman_form"
	PerkSpecialWeapon       = "special_weapon"
	PerkDarkMagic           = "dark_magic"
	PerkVersatile           = "versatile"
	PerkRunework            = "runework"
	PerkChimeric            = "chimeric"
	PerkInnateMagic         = "innate_magic"
	PerkModularFrame        = "modular_frame"
	PerkArmaments           = "armaments"
)

// Assigned-entity fields. Each field links a selection to a named build of
// another type and is gated by the perk of the same key.
const (
	FieldInhumanForm   = "inhuman_form"
	FieldSpecialWeapon = "special_weapon"
)
