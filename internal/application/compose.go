package application

import (
	"fmt"
	"strings"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

var rule = strings.Repeat("━", 52)

const (
	cleanupHintAbove = 10
	footerTitle      = "🧠 MINI-CODER-BRAIN STATUS"
)

type LoadedDocument struct {
	Name    domain.DocumentName
	Content string
}

// BootContext is the material injected once at session start.
type BootContext struct {
	Source    string
	Branch    string
	Health    domain.MemoryHealth
	Documents []LoadedDocument
}

func (b BootContext) Render() string {
	parts := []string{fmt.Sprintf("[MINI-CODER-BRAIN: SESSION START - %s]\n", strings.ToUpper(b.Source))}

	if b.Branch != "" {
		parts = append(parts, "📍 Branch: "+b.Branch)
	}

	parts = append(parts, "💾 Memory: "+b.Health.Tier.Badge())
	if b.Health.SessionUpdates > cleanupHintAbove {
		parts = append(parts, fmt.Sprintf("    💡 Consider running /memory-cleanup (%d session updates)", b.Health.SessionUpdates))
	}

	if len(b.Documents) > 0 {
		parts = append(parts, "\n📚 Loaded context files:")
		for _, doc := range b.Documents {
			if doc.Name == domain.DocumentActiveContext {
				parts = append(parts, "   ✅ "+string(doc.Name)+" (core only)")
				continue
			}
			parts = append(parts, "   ✅ "+string(doc.Name))
		}
	}

	var out strings.Builder
	out.WriteString(strings.Join(parts, "\n"))
	out.WriteString("\n\n")

	if len(b.Documents) == 0 {
		return out.String()
	}

	out.WriteString(rule + "\n")
	out.WriteString("📂 MEMORY BANK CONTEXT (Loaded once, persists in history)\n")
	out.WriteString(rule + "\n\n")
	for _, doc := range b.Documents {
		fmt.Fprintf(&out, "### %s\n\n%s\n\n", doc.Name.Label(), doc.Content)
	}

	return out.String()
}

// FooterText is the status block the assistant must reproduce verbatim.
func FooterText(s Signals) string {
	lines := []string{
		"\n" + footerTitle,
		fmt.Sprintf("📊 Activity: %d ops | 🗺️ Map: %s | ⚡ Context: Active", s.Ops, s.Map),
		fmt.Sprintf("🎭 Profile: %s | ⏱️ %s | 🎯 Focus: %s", s.Profile, s.Duration, s.Focus),
		fmt.Sprintf("💾 Memory: %s | 🔄 Last sync: %s | 🔧 Tools: N/A", s.Health.Tier.Label(), s.LastSync),
	}

	if s.Notification != nil {
		lines = append(lines, "\n"+s.Notification.Message)
	}

	return strings.Join(lines, "\n")
}

// TurnContext wraps the footer in the reproduction instructions.
func TurnContext(s Signals) string {
	var out strings.Builder
	out.WriteString(FooterText(s))
	out.WriteString("\n\n")
	out.WriteString(rule + "\n")
	out.WriteString("🔒 MANDATORY FOOTER VALIDATION (v2.2 3-LAYER ENFORCEMENT)\n")
	out.WriteString(rule + "\n\n")
	out.WriteString("BEFORE ENDING YOUR RESPONSE, YOU MUST:\n\n")
	out.WriteString("1️⃣  DISPLAY the status footer shown above\n")
	out.WriteString("2️⃣  DO NOT modify the format\n")
	out.WriteString("3️⃣  DO NOT recalculate values\n")
	out.WriteString("4️⃣  ALWAYS include at end of EVERY response\n\n")

	if s.Notification != nil {
		out.WriteString("⚠️  NOTIFICATION DETECTED - You MUST include the 5th line:\n")
		fmt.Fprintf(&out, "    %s\n\n", s.Notification.Message)
	}

	return out.String()
}
