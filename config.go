package video_filer

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	DefaultDirTemplate  = "completed/{{.UploaderName}}({{.UploaderID}}) - {{.Domain}}"
	DefaultFileTemplate = "{{.Title}}{{.Ext}}"
)

// NamingConfig decides where an archived file ends up, relative to the directory it started in.
type NamingConfig struct {
	DirTemplate  *template.Template
	FileTemplate *template.Template
}

func NewNamingConfig() NamingConfig {
	return NamingConfig{
		DirTemplate:  template.Must(template.New("target_dir").Parse(DefaultDirTemplate)),
		FileTemplate: template.Must(template.New("target_file").Parse(DefaultFileTemplate)),
	}
}

// ParseNamingConfig builds a NamingConfig from template strings; an empty string selects the default.
func ParseNamingConfig(dirTemplate, fileTemplate string) (NamingConfig, error) {
	if dirTemplate == "" {
		dirTemplate = DefaultDirTemplate
	}
	if fileTemplate == "" {
		fileTemplate = DefaultFileTemplate
	}
	dirTmpl, err := template.New("target_dir").Option("missingkey=error").Parse(dirTemplate)
	if err != nil {
		return NamingConfig{}, fmt.Errorf("invalid directory template: %w", err)
	}
	fileTmpl, err := template.New("target_file").Option("missingkey=error").Parse(fileTemplate)
	if err != nil {
		return NamingConfig{}, fmt.Errorf("invalid file name template: %w", err)
	}
	return NamingConfig{DirTemplate: dirTmpl, FileTemplate: fileTmpl}, nil
}

// Destination returns the directory and full file path that sourceFile should be moved to.
func (c NamingConfig) Destination(sourceFile string, meta *VideoMetadata) (dir string, file string, err error) {
	args := targetTemplateArgs{
		ID:           SanitizeName(meta.ID),
		Title:        SanitizeName(meta.Title),
		UploaderID:   SanitizeName(meta.UploaderID),
		UploaderName: SanitizeName(meta.UploaderName),
		Platform:     meta.Platform.String(),
		Domain:       meta.Platform.Domain(),
		Ext:          filepath.Ext(sourceFile),
	}
	relDir, err := render(c.DirTemplate, &args)
	if err != nil {
		return "", "", err
	}
	name, err := render(c.FileTemplate, &args)
	if err != nil {
		return "", "", err
	}
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", "", fmt.Errorf("invalid file name %q", name)
	}
	dir = filepath.Join(filepath.Dir(sourceFile), relDir)
	return dir, filepath.Join(dir, name), nil
}

func render(tmpl *template.Template, args *targetTemplateArgs) (string, error) {
	builder := strings.Builder{}
	if err := tmpl.Execute(&builder, args); err != nil {
		return "", err
	} else {
		return builder.String(), nil
	}
}

type targetTemplateArgs struct {
	ID           string
	Title        string
	UploaderID   string
	UploaderName string
	Platform     string
	Domain       string
	Ext          string
}
