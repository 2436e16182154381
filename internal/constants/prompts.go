package constants

// SQLGenerationPrompt asks the model for exactly one SQL statement.
// Fields: .Schema, .ChatHistory, .Question
const SQLGenerationPrompt = `
Você é um especialista em SQL. Dada uma pergunta do usuário e um esquema de tabela, escreva uma consulta SQL que responda à pergunta do usuário.
Considere o histórico da conversa, se houver.
Escreva APENAS a consulta SQL e nada mais. Não envolva a consulta SQL em nenhum outro texto, nem mesmo acentos graves (backticks) ou marcadores de linguagem.

<SCHEMA>{{.Schema}}</SCHEMA>

Histórico da Conversa (se aplicável): {{.ChatHistory}}

Pergunta: {{.Question}}
Consulta SQL:
`

// ResultFormattingPrompt asks the model to transcribe a raw result string
// into Portuguese text without reinterpreting it.
// Fields: .Schema, .Question, .Query, .RawData
const ResultFormattingPrompt = `
Sua única tarefa é formatar a 'String de Dados Brutos' (que é o resultado de uma consulta SQL) em um texto legível para um humano,
respondendo à 'Pergunta Original do Usuário'.
- Use os dados EXATAMENTE como aparecem na string. NÃO invente, adicione, omita ou altere nenhuma informação.
- NÃO adicione saudações, opiniões ou texto extra não solicitado.
- Se a string contiver uma lista de itens, formate-os como uma lista com marcadores ou de forma narrativa clara.
- Se for um valor único (como uma contagem), apresente-o em uma frase curta e direta.
- Se a lista estiver vazia ("[]"), diga que a consulta não retornou resultados.
- Se um valor for 'None' ou 'NULL', represente-o como '(não informado)'.
- Se encontrar representações de datas ou horas (ex: "datetime.date(YYYY, MM, DD)"), formate-as como "DD/MM/YYYY".
- Não mencione o esquema do banco (<SCHEMA>) ou a query SQL (<SQL>) na sua resposta final.

Exemplo 1 (Lista de strings):
String de Dados Brutos: "[('Vendas',), ('Marketing',), ('Engenharia',)]"
Sua Saída Formatada:
Os dados encontrados foram:
- Vendas
- Marketing
- Engenharia

Exemplo 2 (Valor único numérico):
String de Dados Brutos: "[(55,)]"
Sua Saída Formatada:
O resultado da consulta é: 55

Exemplo 3 (Lista vazia):
String de Dados Brutos: "[]"
Sua Saída Formatada:
A consulta não retornou resultados.

Exemplo 4 (Múltiplos tipos de dados, incluindo data e None):
String de Dados Brutos: "[('Ana Silva', 30, datetime.date(2023, 10, 5), None), ('Carlos Souza', 250.75, datetime.date(2022, 3, 1), 'Ativo')]"
Sua Saída Formatada:
Os dados encontrados foram:
- Registro 1: Ana Silva, 30, 05/10/2023, (não informado)
- Registro 2: Carlos Souza, 250.75, 01/03/2022, Ativo

Exemplo 5 (Lista com múltiplos campos por item):
String de Dados Brutos: "[('Lucas Silva', 'CL01'), ('Julia Costa', 'CL02'), ('Roberto Lima', 'CL03'), ('Fernanda Rocha', 'CL04'), ('Paula Mendes', 'CL05')]"
Sua Saída Formatada:
Os nomes dos clientes e seus respectivos IDs são:
- Lucas Silva, ID: CL01
- Julia Costa, ID: CL02
- Roberto Lima, ID: CL03
- Fernanda Rocha, ID: CL04
- Paula Mendes, ID: CL05

Se houver mais de 5 resultados, siga o mesmo esquema de formatação dos exemplos anteriores.
Nunca altere o formato, independentemente da quantidade de resultados obtidos.

<SCHEMA>{{.Schema}}</SCHEMA>

Pergunta Original do Usuário: {{.Question}}
Consulta SQL Executada: <SQL>{{.Query}}</SQL>
String de Dados Brutos: {{.RawData}}

Sua Saída Formatada (responda em português):
`
