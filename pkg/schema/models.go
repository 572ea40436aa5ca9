// Package schema provides database models for cnpjdb.
// Target tables keep every source field as text in source order, so
// extracted files can be copied into them without conversion.
package schema

import "time"

// Empresa is a company, the parent record of the data set.
type Empresa struct {
	CnpjBasico                string `gorm:"column:cnpj_basico;type:text;index"`
	RazaoSocial               string `gorm:"column:razao_social;type:text"`
	NaturezaJuridica          string `gorm:"column:natureza_juridica;type:text"`
	QualificacaoResponsavel   string `gorm:"column:qualificacao_responsavel;type:text"`
	CapitalSocial             string `gorm:"column:capital_social;type:text"`
	PorteEmpresa              string `gorm:"column:porte_empresa;type:text"`
	EnteFederativoResponsavel string `gorm:"column:ente_federativo_responsavel;type:text"`
}

func (Empresa) TableName() string { return "empresas" }

// Estabelecimento is an establishment (head office or branch) of a company.
type Estabelecimento struct {
	CnpjBasico                string `gorm:"column:cnpj_basico;type:text;index"`
	CnpjOrdem                 string `gorm:"column:cnpj_ordem;type:text"`
	CnpjDv                    string `gorm:"column:cnpj_dv;type:text"`
	IdentificadorMatrizFilial string `gorm:"column:identificador_matriz_filial;type:text"`
	NomeFantasia              string `gorm:"column:nome_fantasia;type:text"`
	SituacaoCadastral         string `gorm:"column:situacao_cadastral;type:text"`
	DataSituacaoCadastral     string `gorm:"column:data_situacao_cadastral;type:text"`
	MotivoSituacaoCadastral   string `gorm:"column:motivo_situacao_cadastral;type:text"`
	NomeCidadeExterior        string `gorm:"column:nome_cidade_exterior;type:text"`
	Pais                      string `gorm:"column:pais;type:text"`
	DataInicioAtividade       string `gorm:"column:data_inicio_atividade;type:text"`
	CnaeFiscalPrincipal       string `gorm:"column:cnae_fiscal_principal;type:text"`
	CnaeFiscalSecundaria      string `gorm:"column:cnae_fiscal_secundaria;type:text"`
	TipoLogradouro            string `gorm:"column:tipo_logradouro;type:text"`
	Logradouro                string `gorm:"column:logradouro;type:text"`
	Numero                    string `gorm:"column:numero;type:text"`
	Complemento               string `gorm:"column:complemento;type:text"`
	Bairro                    string `gorm:"column:bairro;type:text"`
	Cep                       string `gorm:"column:cep;type:text"`
	Uf                        string `gorm:"column:uf;type:text"`
	Municipio                 string `gorm:"column:municipio;type:text"`
	Ddd1                      string `gorm:"column:ddd_1;type:text"`
	Telefone1                 string `gorm:"column:telefone_1;type:text"`
	Ddd2                      string `gorm:"column:ddd_2;type:text"`
	Telefone2                 string `gorm:"column:telefone_2;type:text"`
	DddFax                    string `gorm:"column:ddd_fax;type:text"`
	Fax                       string `gorm:"column:fax;type:text"`
	CorreioEletronico         string `gorm:"column:correio_eletronico;type:text"`
	SituacaoEspecial          string `gorm:"column:situacao_especial;type:text"`
	DataSituacaoEspecial      string `gorm:"column:data_situacao_especial;type:text"`
}

func (Estabelecimento) TableName() string { return "estabelecimentos" }

// Socio is a partner of a company.
type Socio struct {
	CnpjBasico                     string `gorm:"column:cnpj_basico;type:text;index"`
	IdentificadorSocio             string `gorm:"column:identificador_socio;type:text"`
	NomeSocioRazaoSocial           string `gorm:"column:nome_socio_razao_social;type:text"`
	CpfCnpjSocio                   string `gorm:"column:cpf_cnpj_socio;type:text"`
	QualificacaoSocio              string `gorm:"column:qualificacao_socio;type:text"`
	DataEntradaSociedade           string `gorm:"column:data_entrada_sociedade;type:text"`
	Pais                           string `gorm:"column:pais;type:text"`
	RepresentanteLegal             string `gorm:"column:representante_legal;type:text"`
	NomeDoRepresentante            string `gorm:"column:nome_do_representante;type:text"`
	QualificacaoRepresentanteLegal string `gorm:"column:qualificacao_representante_legal;type:text"`
	FaixaEtaria                    string `gorm:"column:faixa_etaria;type:text"`
}

func (Socio) TableName() string { return "socios" }

// IngestLog records every file committed by the loader. The row is
// inserted in the same transaction as the data, so its presence proves
// the file is in the database even if the loaded marker on disk is
// missing.
type IngestLog struct {
	ID        uint      `gorm:"primaryKey"`
	FileName  string    `gorm:"type:text;not null;uniqueIndex:idx_ingest_file"`
	SizeBytes int64     `gorm:"not null;uniqueIndex:idx_ingest_file"`
	Target    string    `gorm:"type:text;not null"`
	Rows      int64     `gorm:"not null"`
	Mode      string    `gorm:"type:text;not null"`
	RunID     string    `gorm:"type:uuid;not null"`
	LoadedAt  time.Time `gorm:"not null"`
}

func (IngestLog) TableName() string { return "ingest_log" }
