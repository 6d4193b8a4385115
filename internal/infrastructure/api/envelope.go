package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Detección de forma del sobre de respuesta. El backend no es consistente:
// un endpoint de lista puede contestar un arreglo desnudo o {clave: [...]},
// y uno de entidad puede contestar la entidad desnuda o {clave: {...}}.
// Estas funciones inspeccionan la forma real y extraen el contenido.

// decodeList extrae los elementos de una respuesta de lista. keys son las
// claves de sobre conocidas para el endpoint, en orden de preferencia; si
// ninguna está presente se acepta un único valor de tipo arreglo.
func decodeList(body []byte, keys ...string) ([]json.RawMessage, error) {
	switch firstByte(body) {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("api: lista inválida: %w", err)
		}
		return items, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("api: sobre inválido: %w", err)
		}
		for _, key := range keys {
			raw, ok := envelope[key]
			if ok && firstByte(raw) == '[' {
				var items []json.RawMessage
				if err := json.Unmarshal(raw, &items); err != nil {
					return nil, fmt.Errorf("api: lista bajo %q inválida: %w", key, err)
				}
				return items, nil
			}
		}
		// Sin clave conocida: si el sobre trae exactamente un arreglo, es la lista.
		var found json.RawMessage
		for _, raw := range envelope {
			if firstByte(raw) == '[' {
				if found != nil {
					return nil, fmt.Errorf("api: sobre ambiguo, más de un arreglo sin clave conocida")
				}
				found = raw
			}
		}
		if found != nil {
			var items []json.RawMessage
			if err := json.Unmarshal(found, &items); err != nil {
				return nil, fmt.Errorf("api: lista inválida: %w", err)
			}
			return items, nil
		}
		return nil, fmt.Errorf("api: la respuesta no contiene una lista")
	default:
		return nil, fmt.Errorf("api: respuesta no es JSON de lista ni sobre")
	}
}

// decodeEntity extrae una entidad que puede venir desnuda o anidada bajo
// alguna de las claves indicadas.
func decodeEntity(body []byte, keys ...string) (json.RawMessage, error) {
	if firstByte(body) != '{' {
		return nil, fmt.Errorf("api: respuesta no es un objeto JSON")
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("api: sobre inválido: %w", err)
	}
	for _, key := range keys {
		raw, ok := envelope[key]
		if ok && firstByte(raw) == '{' {
			return raw, nil
		}
	}
	// Sin clave conocida: el objeto completo es la entidad.
	return body, nil
}

func firstByte(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
