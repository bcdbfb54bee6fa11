package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/router"
)

// User-facing copy. The storefront speaks Spanish.
const (
	msgWelcomeFmt = "Hola %s, bienvenido a JD Market. ¿En qué puedo ayudarte hoy?"
	msgMenuBody   = "Elige una opción:"

	msgAsesor  = "Hola, un asesor se pondrá en contacto contigo pronto."
	msgSoporte = "Conectando con soporte técnico…"
	msgIAEnter = "Has entrado al modo de consultas sobre productos. Escribe tu pregunta y la IA te responderá. " +
		"Para volver al menú escribe \"salir\", \"menu\" o \"volver\"."

	msgIAExit        = "Has salido del modo de consultas. ¿En qué más puedo ayudarte?"
	msgIAApology     = "Lo siento, no pude responder tu pregunta en este momento. Intenta de nuevo más tarde."
	msgUnknownOption = "Opción no reconocida. Elige Asesor, Soporte o IA Productos."

	msgLocationIntro = "Nuestra sede en Bogotá:"

	sampleDocumentURL     = "https://s3.amazonaws.com/gndx.dev/medpet-file.pdf"
	sampleDocumentCaption = "¡Aquí tienes un PDF de ejemplo!"
)

// welcomeMenu is the three-option menu sent after a greeting.
var welcomeMenu = []domain.Button{
	{ID: "asesor", Title: "Asesor"},
	{ID: "soporte", Title: "Soporte"},
	{ID: "ia_productos", Title: "IA Productos"},
}

// storeLocation is the physical store shown by the "ubicacion" command.
var storeLocation = domain.Location{
	Latitude:  4.629107,
	Longitude: -74.083424,
	Name:      "JD Market - Teusaquillo",
	Address:   "Cra. 31a #25A-47, Teusaquillo, Bogotá, Cundinamarca",
}

// registerCommands installs the fixed command table. It runs once at
// construction; the router is read-only afterwards.
func (e *Engine) registerCommands() {
	e.commands.RegisterText(e.greetCmd, "hola", "hello", "hi", "buenas tardes")
	e.commands.RegisterText(e.mediaCmd, "media")
	e.commands.RegisterText(e.locationCmd, "ubicacion")

	for _, id := range []string{"asesor", "soporte", "ia_productos"} {
		e.commands.RegisterButton(id, e.menuOptionCmd)
	}
}

func (e *Engine) greetCmd(ctx context.Context, tc router.TextContext) error {
	e.greet(ctx, tc)
	return nil
}

// greet sends the personalized welcome plus the menu and marks the
// session greeted.
func (e *Engine) greet(ctx context.Context, tc router.TextContext) {
	name := tc.SenderName
	if name == "" {
		name = tc.To
	}
	if name == "" {
		name = "visitante"
	}

	e.send(ctx, domain.TextRequest(tc.To, fmt.Sprintf(msgWelcomeFmt, name), tc.MessageID))
	e.sendMenu(ctx, tc.To)
	e.setState(tc.To, domain.StateGreeted)
}

func (e *Engine) sendMenu(ctx context.Context, to string) {
	e.send(ctx, domain.ButtonsRequest(to, msgMenuBody, welcomeMenu))
}

func (e *Engine) mediaCmd(ctx context.Context, tc router.TextContext) error {
	e.send(ctx, domain.MediaRequest(tc.To, domain.MediaDocument, sampleDocumentURL, sampleDocumentCaption))
	return nil
}

func (e *Engine) locationCmd(ctx context.Context, tc router.TextContext) error {
	e.send(ctx, domain.TextRequest(tc.To, msgLocationIntro, tc.MessageID))
	e.send(ctx, domain.LocationRequest(tc.To, storeLocation))
	return nil
}

func (e *Engine) menuOptionCmd(ctx context.Context, bc router.ButtonContext) error {
	switch bc.ButtonID {
	case "asesor":
		e.setState(bc.To, domain.StateIdle)
		e.send(ctx, domain.TextRequest(bc.To, msgAsesor, bc.MessageID))
	case "soporte":
		e.setState(bc.To, domain.StateIdle)
		e.send(ctx, domain.TextRequest(bc.To, msgSoporte, bc.MessageID))
	case "ia_productos":
		e.setState(bc.To, domain.StateIAMode)
		e.send(ctx, domain.TextRequest(bc.To, msgIAEnter, bc.MessageID))
	default:
		e.send(ctx, domain.TextRequest(bc.To, msgUnknownOption, bc.MessageID))
	}
	return nil
}

func normalizeBody(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
