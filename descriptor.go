package packager

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/josephspurrier/goversioninfo"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Language and codepage the version resource declares: U.S. English with
// the Unicode codepage. The string-table key and the translation block
// must agree on this pair or Windows ignores the resource.
const (
	langUSEnglish  = 0x0409
	charsetUnicode = 0x04B0
)

// descriptorTemplate is the packaging tool's version-file syntax. The
// fixed-info flags mirror the values the tool itself generates:
// VS_FFI_FILEFLAGSMASK, no flags set, VOS_NT_WINDOWS32, VFT_APP.
var descriptorTemplate = template.Must(template.New("versioninfo").Parse(`# Generated by packager. Do not edit; rewritten on every build.
VSVersionInfo(
  ffi=FixedFileInfo(
    filevers=({{.File.Major}}, {{.File.Minor}}, {{.File.Patch}}, {{.File.Build}}),
    prodvers=({{.Prod.Major}}, {{.Prod.Minor}}, {{.Prod.Patch}}, {{.Prod.Build}}),
    mask=0x{{.Fixed.FileFlagsMask}},
    flags=0x{{.Fixed.FileFlags}},
    OS=0x{{.Fixed.FileOS}},
    fileType=0x{{.Fixed.FileType}},
    subtype=0x{{.Fixed.FileSubType}},
    date=(0, 0)
  ),
  kids=[
    StringFileInfo([
      StringTable(
        '{{.TableKey}}',
        [StringStruct('CompanyName', '{{.Strings.CompanyName}}'),
         StringStruct('FileDescription', '{{.Strings.FileDescription}}'),
         StringStruct('FileVersion', '{{.Strings.FileVersion}}'),
         StringStruct('InternalName', '{{.Strings.InternalName}}'),
         StringStruct('OriginalFilename', '{{.Strings.OriginalFilename}}'),
         StringStruct('ProductName', '{{.Strings.ProductName}}'),
         StringStruct('ProductVersion', '{{.Strings.ProductVersion}}'),
         StringStruct('LegalCopyright', '{{.Strings.LegalCopyright}}')])
    ]),
    VarFileInfo([VarStruct('Translation', [{{.Lang}}, {{.Charset}}])])
  ]
)
`))

type descriptorContext struct {
	Fixed    goversioninfo.FixedFileInfo
	File     goversioninfo.FileVersion
	Prod     goversioninfo.FileVersion
	Strings  goversioninfo.StringFileInfo
	TableKey string
	Lang     uint16
	Charset  uint16
}

// BuildVersionInfo assembles the in-memory version resource: the tuple
// repeated as file and product version, the fixed metadata strings with
// the dotted version form, and the declared translation pair.
func BuildVersionInfo(t Tuple, cfg Config) *goversioninfo.VersionInfo {
	fv := goversioninfo.FileVersion{Major: t.Major, Minor: t.Minor, Patch: t.Patch, Build: t.Build}

	vi := &goversioninfo.VersionInfo{}
	vi.FixedFileInfo.FileVersion = fv
	vi.FixedFileInfo.ProductVersion = fv
	vi.FixedFileInfo.FileFlagsMask = "3f"
	vi.FixedFileInfo.FileFlags = "00"
	vi.FixedFileInfo.FileOS = "040004"
	vi.FixedFileInfo.FileType = "01"
	vi.FixedFileInfo.FileSubType = "00"

	vi.StringFileInfo.CompanyName = cfg.CompanyName
	vi.StringFileInfo.FileDescription = cfg.FileDescription
	vi.StringFileInfo.FileVersion = t.String()
	vi.StringFileInfo.InternalName = cfg.InternalName
	vi.StringFileInfo.OriginalFilename = cfg.AppName + ".exe"
	vi.StringFileInfo.ProductName = cfg.ProductName
	vi.StringFileInfo.ProductVersion = t.String()
	vi.StringFileInfo.LegalCopyright = cfg.LegalCopyright

	vi.VarFileInfo.Translation = goversioninfo.Translation{
		LangID:    langUSEnglish,
		CharsetID: charsetUnicode,
	}
	vi.IconPath = cfg.iconPath()
	return vi
}

// RenderDescriptor renders vi into the packaging tool's descriptor text.
func RenderDescriptor(vi *goversioninfo.VersionInfo) (string, error) {
	lang := uint16(vi.VarFileInfo.Translation.LangID)
	charset := uint16(vi.VarFileInfo.Translation.CharsetID)

	var buf strings.Builder
	err := descriptorTemplate.Execute(&buf, descriptorContext{
		Fixed:    vi.FixedFileInfo,
		File:     vi.FixedFileInfo.FileVersion,
		Prod:     vi.FixedFileInfo.ProductVersion,
		Strings:  vi.StringFileInfo,
		TableKey: fmt.Sprintf("%04X%04X", lang, charset),
		Lang:     lang,
		Charset:  charset,
	})
	if err != nil {
		return "", errors.Wrap(err, "execute descriptor template")
	}
	return buf.String(), nil
}

// WriteDescriptor renders vi and writes it to path in the Windows-1252
// encoding the descriptor parser requires. Metadata that cannot be
// represented in that codepage fails the write instead of being mangled.
func WriteDescriptor(path string, vi *goversioninfo.VersionInfo) error {
	text, err := RenderDescriptor(vi)
	if err != nil {
		return errors.Wrapf(ErrDescriptorWriteFailed, "render %s: %v", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return errors.Wrapf(ErrDescriptorWriteFailed, "create %s: %v", path, err)
	}

	w := transform.NewWriter(f, charmap.Windows1252.NewEncoder())
	if _, err := io.WriteString(w, text); err != nil {
		f.Close()
		return errors.Wrapf(ErrDescriptorWriteFailed, "encode %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return errors.Wrapf(ErrDescriptorWriteFailed, "encode %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(ErrDescriptorWriteFailed, "close %s: %v", path, err)
	}
	return nil
}
