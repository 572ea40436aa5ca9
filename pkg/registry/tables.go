package registry

import (
	"strings"
)

// LoadedSuffix marks files that were bulk-loaded already.
const LoadedSuffix = ".loaded"

// Table describes a database table that receives extracted files.
type Table struct {
	// Name of the table.
	Name string
	// Suffix is the ending of archive member names that go to the table.
	Suffix string
	// Columns in the order they appear in source rows.
	Columns []string
}

// Tables returns the fixed association between member name suffixes
// and target tables.
func Tables() []Table {
	return []Table{
		{
			Name:   "empresas",
			Suffix: "EMPRECSV",
			Columns: []string{
				"cnpj_basico", "razao_social", "natureza_juridica",
				"qualificacao_responsavel", "capital_social", "porte_empresa",
				"ente_federativo_responsavel",
			},
		},
		{
			Name:   "estabelecimentos",
			Suffix: "ESTABELE",
			Columns: []string{
				"cnpj_basico", "cnpj_ordem", "cnpj_dv",
				"identificador_matriz_filial", "nome_fantasia",
				"situacao_cadastral", "data_situacao_cadastral",
				"motivo_situacao_cadastral", "nome_cidade_exterior", "pais",
				"data_inicio_atividade", "cnae_fiscal_principal",
				"cnae_fiscal_secundaria", "tipo_logradouro", "logradouro",
				"numero", "complemento", "bairro", "cep", "uf", "municipio",
				"ddd_1", "telefone_1", "ddd_2", "telefone_2", "ddd_fax", "fax",
				"correio_eletronico", "situacao_especial",
				"data_situacao_especial",
			},
		},
		{
			Name:   "socios",
			Suffix: "SOCIOCSV",
			Columns: []string{
				"cnpj_basico", "identificador_socio", "nome_socio_razao_social",
				"cpf_cnpj_socio", "qualificacao_socio", "data_entrada_sociedade",
				"pais", "representante_legal", "nome_do_representante",
				"qualificacao_representante_legal", "faixa_etaria",
			},
		},
	}
}

// TableFor finds the target table for an extracted file name.
// The second value is false when no suffix matches.
func TableFor(fileName string) (Table, bool) {
	name := strings.TrimSuffix(fileName, LoadedSuffix)
	for _, t := range Tables() {
		if strings.HasSuffix(name, t.Suffix) {
			return t, true
		}
	}
	return Table{}, false
}

// IsLoaded returns true if the file name carries the loaded marker.
func IsLoaded(fileName string) bool {
	return strings.HasSuffix(fileName, LoadedSuffix)
}
