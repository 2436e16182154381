package constants

// Messages shown to the end user. The UI is Portuguese.
const (
	MessageEmptyQuestion      = "Por favor, digite uma pergunta para continuar."
	MessageURINotFound        = "URI para %s não encontrada. Verifique o arquivo .env."
	MessageConnectionFailed   = "Não foi possível conectar ao banco %s. Erro: %v"
	MessageConnected          = "Conectado com sucesso ao banco %s!"
	MessageNoTables           = "Nenhuma tabela foi encontrada ou a conexão falhou."
	MessageInvalidQuery       = "A IA não conseguiu gerar uma consulta SQL válida. Tentativa: '%s'"
	MessageTableNotFound      = "❌ Erro de Consulta: A tabela que você pediu não foi encontrada no banco de dados."
	MessageFatalError         = "Ocorreu um erro fatal durante a execução: %v"
	MessageUnsupportedBackend = "Banco de dados não suportado: %s"
	MessageQueryFinished      = "Consulta finalizada!"
	MessageNoResults          = "A consulta não retornou resultados."
	MessageEmptyTable         = "A consulta foi executada, mas não retornou nenhum dado."
	MessageTableFallback      = "Não foi possível formatar os dados em tabela (Erro: %v). Exibindo resultado bruto:"
)

// Error kinds reported in a consult response.
const (
	ErrorKindEmptyQuestion      = "empty_question"
	ErrorKindUnsupportedBackend = "unsupported_backend"
	ErrorKindConfigMissing      = "config_missing"
	ErrorKindConnectionFailed   = "connection_failed"
	ErrorKindInvalidQuery       = "invalid_query"
	ErrorKindTableNotFound      = "table_not_found"
	ErrorKindExecutionFailed    = "execution_failed"
)

// Outcomes recorded in the query log and metrics.
const (
	OutcomeSuccess = "success"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)
