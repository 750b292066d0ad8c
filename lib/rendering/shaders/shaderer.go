package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed *.shader
var templateDir embed.FS

var funcs = template.FuncMap{
	"vec4": func(v mgl32.Vec4) string {
		return fmt.Sprintf("vec4(%f, %f, %f, %f)", v[0], v[1], v[2], v[3])
	},
}

type Shaderer struct {
	templates *template.Template
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{}

	var err error

	s.templates, err = template.New("").Funcs(funcs).ParseFS(templateDir, "*.shader")

	return s, err
}

// ShaderData contains stuff that gets passed to the shader templates
type ShaderData struct {
	// GLSLVersion goes into the #version line, e.g. 330
	GLSLVersion int
	Colour      mgl32.Vec4
}

// GLSLVersion maps an OpenGL context version to the matching GLSL version
func GLSLVersion(major, minor int) int {
	if major == 3 && minor < 3 {
		// 3.2 is the only core profile not following the 100*major+10*minor rule
		return 150
	}
	return major*100 + minor*10
}

// Render executes one of the embedded templates, e.g. "quad.shader"
func (s *Shaderer) Render(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", errors.Wrapf(err, "error while rendering template %s", name)
	}
	return b.String(), nil
}

// RenderFile reads a shader file from disk and renders it like the
// embedded ones
func (s *Shaderer) RenderFile(path string, data *ShaderData) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "could not read shader file")
	}
	t, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(content))
	if err != nil {
		return "", errors.Wrapf(err, "could not parse %s", path)
	}
	var b bytes.Buffer
	err = t.Execute(&b, data)
	if err != nil {
		return "", errors.Wrapf(err, "error while rendering %s", path)
	}
	return b.String(), nil
}

// Load renders the shader for the demo (or the file at path if set) and
// splits it into its stages
func (s *Shaderer) Load(demo string, path string, data *ShaderData) (*Source, error) {
	var (
		rendered string
		err      error
	)
	if path == "" {
		rendered, err = s.Render(demo+".shader", data)
	} else {
		rendered, err = s.RenderFile(path, data)
	}
	if err != nil {
		return nil, err
	}
	return ParseSource(strings.NewReader(rendered))
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		if t.Name() == "" {
			continue
		}
		names = append(names, t.Name())
	}
	return names
}
