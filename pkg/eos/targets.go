package eos

// TargetTypes is the set of console target types that can be counted
// with Client.TargetCount.
var TargetTypes = map[string]bool{
	"patch":   true,
	"cuelist": true,
	"cue":     true,
	"group":   true,
	"macro":   true,
	"sub":     true,
	"preset":  true,
	"ip":      true, // intensity palettes
	"fp":      true, // focus palettes
	"cp":      true, // color palettes
	"bp":      true, // beam palettes
	"curve":   true,
	"fx":      true,
	"snap":    true,
	"pixmap":  true,
	"ms":      true, // magic sheets
}

// Tab identifies a console display tab for Client.OpenTab. Values are
// the tab numbers the console's virtual keyboard expects.
type Tab int

const (
	TabChannelsTable       Tab = 1
	TabPSD                 Tab = 2
	TabMagicSheet          Tab = 3
	TabDirectSelects       Tab = 4
	TabMLControls          Tab = 5
	TabEffectStatus        Tab = 6
	TabVirtualKeyboard     Tab = 7
	TabEffectChannels      Tab = 8
	TabPixelMaps           Tab = 9
	TabPixelMapPreview     Tab = 10
	TabShowControl         Tab = 11
	TabPatch               Tab = 12
	TabEffects             Tab = 13
	TabMagicSheetList      Tab = 14
	TabSubmasters          Tab = 15
	TabCues                Tab = 16
	TabGroups              Tab = 17
	TabMacros              Tab = 18
	TabSnapshots           Tab = 19
	TabPark                Tab = 20
	TabCurves              Tab = 21
	TabIntensityPalettes   Tab = 22
	TabFocusPalettes       Tab = 23
	TabColorPalettes       Tab = 24
	TabBeamPalettes        Tab = 25
	TabPresets             Tab = 26
	TabColorPicker         Tab = 27
	TabFaders              Tab = 28
	TabAbout               Tab = 29
	TabCommandHistory      Tab = 30
	TabLampControls        Tab = 31
	TabChannelsInUse       Tab = 32
	TabColorPaths          Tab = 33
	TabFaderListDisplay    Tab = 35
	TabFaderConfig         Tab = 36
	TabSACNOutputViewer    Tab = 37
	TabAugment3D           Tab = 38
	TabCustomDirectSelects Tab = 39
	TabEncoderMaps         Tab = 40
	TabDiagnostics         Tab = 99
	TabManual              Tab = 100
)
