package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateIDWithPrefix gera um identificador curto com prefixo de recurso,
// como mb_x1Y2z3 ou task_a9B8c7. O alfabeto é fixo, então a geração nunca
// falha na prática.
func GenerateIDWithPrefix(prefix string) string {
	id, _ := GenerateID()
	return prefix + "_" + id
}
