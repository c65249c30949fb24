package utils

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts são os formatos aceitos para datas de campanha, do mais comum
// para o menos comum. Exportações de plataformas de anúncios variam bastante.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"01-02-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseFlexibleDate tenta interpretar uma data em qualquer um dos formatos
// conhecidos. Retorna erro somente quando nenhum formato reconhece o valor.
func ParseFlexibleDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("data não reconhecida: %q", raw)
}
