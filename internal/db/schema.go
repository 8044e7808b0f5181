package db

// SchemaSQL is the complete schema for the establishments ledger.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. The record store
// applies it on startup and every repository test loads it via GetSchemaSQL(),
// so a column referenced by repository code but missing here fails tests with
// "no such column".
//
// Column names are kept from the original desktop ledger so existing
// visa_bd.db files open unchanged.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS estabelecimentos (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	Estabelecimento TEXT NOT NULL,
	CNPJ_CPF TEXT NOT NULL UNIQUE,
	Grupo TEXT,
	CNAE TEXT,
	Grau_de_risco TEXT,
	Responsavel TEXT,
	CPF_Responsavel TEXT,
	Endereco TEXT,
	Telefone TEXT,
	Email TEXT,
	Projeto_Arquitetonico TEXT,
	Data_ultima_inspecao TEXT,
	Reinspecao TEXT,
	Alvara TEXT,
	Data_proxima_inspecao TEXT,
	Situacao TEXT,
	motivo TEXT
);
`

// GetSchemaSQL returns the authoritative schema SQL.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
