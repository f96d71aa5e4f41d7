// Package docs contém a especificação Swagger servida em /doc.
// Regenerar com: swag init -g main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/archive": {
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[ArchivedCaseResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista Casos arquivados",
                "tags": [
                    "Archive"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Trecho do número do caso ou do motivo",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/archive/cases/{uuid}": {
            "post": {
                "responses": {
                    "201": {
                        "description": "ArchivedCaseResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Arquiva um Caso",
                "description": "Guarda o caso completo como snapshot e o remove da tabela de casos.",
                "tags": [
                    "Archive"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do caso",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": false,
                        "description": "Motivo",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/archive/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "ArchivedCaseResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca um Caso arquivado",
                "tags": [
                    "Archive"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do arquivo",
                        "type": "string"
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Exclui definitivamente um Caso arquivado",
                "tags": [
                    "Archive"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do arquivo",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/archive/{uuid}/restore": {
            "post": {
                "responses": {
                    "200": {
                        "description": "cases.CaseResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr  \"Número do caso já reutilizado\""
                    }
                },
                "summary": "Restaura um Caso arquivado",
                "tags": [
                    "Archive"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do arquivo",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/audit": {
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[AuditResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista registros de auditoria",
                "tags": [
                    "Audit"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "module",
                        "in": "query",
                        "required": false,
                        "description": "Módulo",
                        "type": "string"
                    },
                    {
                        "name": "action",
                        "in": "query",
                        "required": false,
                        "description": "Ação",
                        "type": "string"
                    },
                    {
                        "name": "user_uuid",
                        "in": "query",
                        "required": false,
                        "description": "Autor",
                        "type": "string"
                    },
                    {
                        "name": "entity_type",
                        "in": "query",
                        "required": false,
                        "description": "Tipo da entidade",
                        "type": "string"
                    },
                    {
                        "name": "entity_id",
                        "in": "query",
                        "required": false,
                        "description": "Identificador da entidade",
                        "type": "string"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "required": false,
                        "description": "Início (YYYY-MM-DD ou RFC3339)",
                        "type": "string"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "required": false,
                        "description": "Fim (YYYY-MM-DD ou RFC3339)",
                        "type": "string"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    }
                ]
            }
        },
        "/api/audit/entity/{entity_type}/{entity_id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[AuditResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Histórico de uma entidade",
                "tags": [
                    "Audit"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "entity_type",
                        "in": "path",
                        "required": true,
                        "description": "Tipo da entidade",
                        "type": "string"
                    },
                    {
                        "name": "entity_id",
                        "in": "path",
                        "required": true,
                        "description": "Identificador da entidade",
                        "type": "string"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    }
                ]
            }
        },
        "/api/audit/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "AuditResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Detalha um registro de auditoria",
                "tags": [
                    "Audit"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do registro",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/auth/healthcheck": {
            "get": {
                "responses": {
                    "200": {
                        "description": "HealthcheckResponse"
                    },
                    "401": {
                        "description": "rest_err.RestErr \"Token ausente ou inválido\""
                    }
                },
                "summary": "Verifica o status do login",
                "description": "Retorna o usuário autenticado, suas permissões efetivas e o horário do servidor.",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/auth/login": {
            "post": {
                "responses": {
                    "200": {
                        "description": "LoginResponse \"Login bem-sucedido\""
                    },
                    "400": {
                        "description": "rest_err.RestErr \"Requisição inválida\""
                    },
                    "401": {
                        "description": "rest_err.RestErr \"Credenciais inválidas\""
                    },
                    "403": {
                        "description": "rest_err.RestErr \"Usuário inativo\""
                    },
                    "500": {
                        "description": "rest_err.RestErr \"Erro interno do servidor\""
                    }
                },
                "summary": "Efetua o login do usuário",
                "description": "Autentica por e-mail e senha, abre uma nova sessão (revogando as anteriores) e devolve o token de acesso. O token também é gravado no cookie de sessão.",
                "tags": [
                    "Auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Credenciais do Usuário (Email e Senha)",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/auth/logout": {
            "post": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "rest_err.RestErr \"Token ausente ou inválido\""
                    },
                    "500": {
                        "description": "rest_err.RestErr \"Erro interno do servidor\""
                    }
                },
                "summary": "Encerra a sessão atual",
                "description": "Revoga a sessão do token usado na requisição e limpa o cookie.",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/auth/otp": {
            "post": {
                "responses": {
                    "202": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "rest_err.RestErr \"Requisição inválida\""
                    },
                    "409": {
                        "description": "rest_err.RestErr \"OTP pendente\""
                    },
                    "500": {
                        "description": "rest_err.RestErr \"Erro interno\""
                    }
                },
                "summary": "Solicita um código OTP",
                "description": "Gera um OTP de 6 dígitos, válido por 5 minutos, e envia por e-mail. A resposta não indica se o e-mail existe.",
                "tags": [
                    "Auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Email para envio do OTP",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/auth/password/reset": {
            "post": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "rest_err.RestErr \"Requisição inválida\""
                    },
                    "403": {
                        "description": "rest_err.RestErr \"OTP inválido ou expirado\""
                    },
                    "500": {
                        "description": "rest_err.RestErr \"Erro interno\""
                    }
                },
                "summary": "Troca a senha usando OTP",
                "description": "Valida o OTP, troca a senha e revoga todas as sessões do usuário.",
                "tags": [
                    "Auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Email, OTP e nova senha",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/cases": {
            "post": {
                "responses": {
                    "201": {
                        "description": "CaseResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr  \"Número de caso já utilizado\""
                    }
                },
                "summary": "Cria um Caso",
                "description": "A pontuação e a classificação são calculadas a partir dos cinco critérios.",
                "tags": [
                    "Case"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Dados do caso",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[CaseResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista Casos",
                "tags": [
                    "Case"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    },
                    {
                        "name": "estado",
                        "in": "query",
                        "required": false,
                        "description": "Estado",
                        "type": "string"
                    },
                    {
                        "name": "clasificacion",
                        "in": "query",
                        "required": false,
                        "description": "Classificação",
                        "type": "string"
                    },
                    {
                        "name": "aplicacion",
                        "in": "query",
                        "required": false,
                        "description": "Aplicação",
                        "type": "string"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Trecho do número, descrição ou observações",
                        "type": "string"
                    },
                    {
                        "name": "fecha_desde",
                        "in": "query",
                        "required": false,
                        "description": "Data inicial (AAAA-MM-DD)",
                        "type": "string"
                    },
                    {
                        "name": "fecha_hasta",
                        "in": "query",
                        "required": false,
                        "description": "Data final (AAAA-MM-DD)",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/cases/score/preview": {
            "post": {
                "responses": {
                    "200": {
                        "description": "scoring.Result"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Simula a pontuação",
                "description": "Calcula pontuação e classificação sem gravar nada.",
                "tags": [
                    "Case"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Critérios",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/cases/stats": {
            "get": {
                "responses": {
                    "200": {
                        "description": "StatsResponseDto"
                    }
                },
                "summary": "Estatísticas dos Casos",
                "description": "Contagens por classificação e por estado dentro do escopo do usuário.",
                "tags": [
                    "Case"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/cases/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "CaseResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca um Caso",
                "tags": [
                    "Case"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do caso",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "CaseResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Atualiza um Caso",
                "description": "A pontuação só é recalculada quando algum critério é enviado.",
                "tags": [
                    "Case"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do caso",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Campos a alterar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Remove um Caso",
                "tags": [
                    "Case"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do caso",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/dispositions": {
            "post": {
                "responses": {
                    "201": {
                        "description": "DispositionResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr  \"Caso vinculado não encontrado\""
                    }
                },
                "summary": "Registra uma Disposição",
                "tags": [
                    "Disposition"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Dados da disposição",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[DispositionResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista Disposições",
                "tags": [
                    "Disposition"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Trecho do número do caso ou do script",
                        "type": "string"
                    },
                    {
                        "name": "aplicacion",
                        "in": "query",
                        "required": false,
                        "description": "Aplicação",
                        "type": "string"
                    },
                    {
                        "name": "case_uuid",
                        "in": "query",
                        "required": false,
                        "description": "Caso vinculado",
                        "type": "string"
                    },
                    {
                        "name": "fecha_desde",
                        "in": "query",
                        "required": false,
                        "description": "Data inicial (AAAA-MM-DD)",
                        "type": "string"
                    },
                    {
                        "name": "fecha_hasta",
                        "in": "query",
                        "required": false,
                        "description": "Data final (AAAA-MM-DD)",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/dispositions/summary": {
            "get": {
                "responses": {
                    "200": {
                        "description": "SummaryResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Resumo mensal de Disposições",
                "description": "Total de disposições por mês no ano informado (padrão: ano corrente).",
                "tags": [
                    "Disposition"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "year",
                        "in": "query",
                        "required": false,
                        "description": "Ano",
                        "type": "integer"
                    }
                ]
            }
        },
        "/api/dispositions/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "DispositionResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca uma Disposição",
                "tags": [
                    "Disposition"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da disposição",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "DispositionResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Atualiza uma Disposição",
                "tags": [
                    "Disposition"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da disposição",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Campos a alterar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Remove uma Disposição",
                "tags": [
                    "Disposition"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da disposição",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/knowledge": {
            "post": {
                "responses": {
                    "201": {
                        "description": "DocumentResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr  \"Caso vinculado não encontrado\""
                    }
                },
                "summary": "Cria um Documento de conhecimento",
                "tags": [
                    "Knowledge"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Dados do documento",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[DocumentResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Pesquisa Documentos",
                "tags": [
                    "Knowledge"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Texto no título, resumo ou conteúdo",
                        "type": "string"
                    },
                    {
                        "name": "tag",
                        "in": "query",
                        "required": false,
                        "description": "Tag",
                        "type": "string"
                    },
                    {
                        "name": "document_type",
                        "in": "query",
                        "required": false,
                        "description": "guia, procedimiento, faq ou solucion",
                        "type": "string"
                    },
                    {
                        "name": "published",
                        "in": "query",
                        "required": false,
                        "description": "Publicados",
                        "type": "boolean"
                    },
                    {
                        "name": "case_uuid",
                        "in": "query",
                        "required": false,
                        "description": "Caso vinculado",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/knowledge/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "DocumentResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca um Documento",
                "description": "Cada leitura incrementa view_count.",
                "tags": [
                    "Knowledge"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do documento",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "DocumentResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Atualiza um Documento",
                "description": "Alterar título ou conteúdo incrementa a versão.",
                "tags": [
                    "Knowledge"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do documento",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Campos a alterar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Remove um Documento",
                "description": "Remove também os anexos do disco.",
                "tags": [
                    "Knowledge"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do documento",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/knowledge/{uuid}/attachments": {
            "post": {
                "responses": {
                    "201": {
                        "description": "AttachmentResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "413": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Envia um anexo",
                "tags": [
                    "Knowledge"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do documento",
                        "type": "string"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "Arquivo",
                        "type": "file"
                    }
                ]
            }
        },
        "/api/knowledge/{uuid}/attachments/{attachment_uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "binary"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Baixa um anexo",
                "tags": [
                    "Knowledge"
                ],
                "produces": [
                    "application/octet-stream"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do documento",
                        "type": "string"
                    },
                    {
                        "name": "attachment_uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do anexo",
                        "type": "string"
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Remove um anexo",
                "tags": [
                    "Knowledge"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do documento",
                        "type": "string"
                    },
                    {
                        "name": "attachment_uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do anexo",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/knowledge/{uuid}/publish": {
            "patch": {
                "responses": {
                    "200": {
                        "description": "DocumentResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Publica ou despublica um Documento",
                "tags": [
                    "Knowledge"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do documento",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Situação",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/roles": {
            "get": {
                "responses": {
                    "200": {
                        "description": "RoleResponseDto"
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista Papéis com suas permissões",
                "tags": [
                    "Role"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "RoleResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr  \"Permissão inexistente\""
                    },
                    "409": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Cria um Papel",
                "tags": [
                    "Role"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Dados do papel",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/roles/permissions": {
            "get": {
                "responses": {
                    "200": {
                        "description": "PermissionResponseDto"
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Catálogo de permissões",
                "tags": [
                    "Role"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/roles/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "RoleResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca um Papel",
                "tags": [
                    "Role"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do papel",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "RoleResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Atualiza nome e descrição de um Papel",
                "description": "Papéis de sistema não podem ser renomeados.",
                "tags": [
                    "Role"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do papel",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Campos a alterar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr  \"Papel atribuído a usuários ou papel de sistema\""
                    }
                },
                "summary": "Remove um Papel",
                "tags": [
                    "Role"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do papel",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/roles/{uuid}/permissions": {
            "put": {
                "responses": {
                    "200": {
                        "description": "RoleResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Substitui as permissões de um Papel",
                "description": "Troca o conjunto completo de permissões. O cache de permissões do papel é invalidado.",
                "tags": [
                    "Role"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do papel",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Permissões",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/sessions": {
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[SessionResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista sessões ativas",
                "tags": [
                    "Session"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    }
                ]
            }
        },
        "/api/sessions/revoke-others": {
            "post": {
                "responses": {
                    "200": {
                        "description": "RevokeOthersResponseDto"
                    }
                },
                "summary": "Revoga as demais sessões do usuário",
                "description": "Mantém apenas a sessão usada nesta requisição.",
                "tags": [
                    "Session"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/sessions/{uuid}": {
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Revoga uma sessão",
                "tags": [
                    "Session"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da sessão",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/teams": {
            "post": {
                "responses": {
                    "201": {
                        "description": "TeamResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr  \"Código já utilizado\""
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Cria uma Equipe",
                "tags": [
                    "Team"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Dados da equipe",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[TeamResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista Equipes",
                "tags": [
                    "Team"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Trecho do código ou nome",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/teams/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "TeamResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca uma Equipe",
                "tags": [
                    "Team"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da equipe",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "TeamResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Atualiza uma Equipe",
                "tags": [
                    "Team"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da equipe",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Campos a alterar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr  \"Equipe possui membros\""
                    }
                },
                "summary": "Remove uma Equipe",
                "description": "Apenas equipes sem membros podem ser removidas.",
                "tags": [
                    "Team"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da equipe",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/teams/{uuid}/members": {
            "get": {
                "responses": {
                    "200": {
                        "description": "MemberResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista os membros da Equipe",
                "tags": [
                    "Team"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da equipe",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "200": {
                        "description": "MemberResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Adiciona um membro à Equipe",
                "description": "Move o usuário para esta equipe (um usuário pertence a no máximo uma equipe).",
                "tags": [
                    "Team"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da equipe",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Usuário",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/teams/{uuid}/members/{user_uuid}": {
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Remove um membro da Equipe",
                "tags": [
                    "Team"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da equipe",
                        "type": "string"
                    },
                    {
                        "name": "user_uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do usuário",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/todos": {
            "post": {
                "responses": {
                    "201": {
                        "description": "TodoResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr  \"Caso vinculado não encontrado\""
                    }
                },
                "summary": "Cria uma Tarefa",
                "tags": [
                    "Todo"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Dados da tarefa",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[TodoResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista Tarefas",
                "tags": [
                    "Todo"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (máximo 100)",
                        "type": "integer"
                    },
                    {
                        "name": "completed",
                        "in": "query",
                        "required": false,
                        "description": "Concluídas",
                        "type": "boolean"
                    },
                    {
                        "name": "priority",
                        "in": "query",
                        "required": false,
                        "description": "baja, media ou alta",
                        "type": "string"
                    },
                    {
                        "name": "case_uuid",
                        "in": "query",
                        "required": false,
                        "description": "Caso vinculado",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/todos/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "TodoResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca uma Tarefa",
                "tags": [
                    "Todo"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da tarefa",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "TodoResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Atualiza uma Tarefa",
                "tags": [
                    "Todo"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da tarefa",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Campos a alterar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Remove uma Tarefa",
                "tags": [
                    "Todo"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da tarefa",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/todos/{uuid}/toggle": {
            "patch": {
                "responses": {
                    "200": {
                        "description": "TodoResponseDto"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Alterna a conclusão da Tarefa",
                "tags": [
                    "Todo"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID da tarefa",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/users": {
            "post": {
                "responses": {
                    "201": {
                        "description": "UserResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr  \"Papel ou equipe não encontrado\""
                    },
                    "409": {
                        "description": "rest_err.RestErr  \"E-mail já cadastrado\""
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Cria um novo Usuário",
                "description": "Registra um usuário com papel obrigatório e equipe opcional. A senha é armazenada com argon2id.",
                "tags": [
                    "User"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Dados do usuário",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "pagination.Response[UserResponseDto]"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Lista Usuários",
                "description": "Lista paginada restrita ao escopo da permissão users:read.",
                "tags": [
                    "User"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Página (padrão 1)",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Itens por página (padrão 10, máximo 100)",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Trecho do nome ou e-mail",
                        "type": "string"
                    },
                    {
                        "name": "role_uuid",
                        "in": "query",
                        "required": false,
                        "description": "Filtra por papel",
                        "type": "string"
                    },
                    {
                        "name": "team_uuid",
                        "in": "query",
                        "required": false,
                        "description": "Filtra por equipe",
                        "type": "string"
                    },
                    {
                        "name": "live",
                        "in": "query",
                        "required": false,
                        "description": "Filtra por situação",
                        "type": "boolean"
                    }
                ]
            }
        },
        "/api/users/{uuid}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "UserResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Busca um Usuário",
                "tags": [
                    "User"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do usuário",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "UserResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr"
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Atualiza um Usuário",
                "description": "Atualização parcial. Envie team_uuid vazio para remover o usuário da equipe.",
                "tags": [
                    "User"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do usuário",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Campos a alterar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "409": {
                        "description": "rest_err.RestErr  \"Usuário referenciado por outros registros\""
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Remove um Usuário",
                "tags": [
                    "User"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do usuário",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/users/{uuid}/status": {
            "patch": {
                "responses": {
                    "200": {
                        "description": "UserResponseDto"
                    },
                    "400": {
                        "description": "rest_err.RestErr"
                    },
                    "404": {
                        "description": "rest_err.RestErr"
                    },
                    "500": {
                        "description": "rest_err.RestErr"
                    }
                },
                "summary": "Ativa ou desativa um Usuário",
                "tags": [
                    "User"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "uuid",
                        "in": "path",
                        "required": true,
                        "description": "UUID do usuário",
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Nova situação",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/health": {
            "get": {
                "summary": "Verifica a aplicação e o banco",
                "tags": [
                    "Operacional"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "Banco indisponível"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Métricas Prometheus",
                "tags": [
                    "Operacional"
                ],
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Case Management System API",
	Description:      "Gestão de casos de suporte com pontuação de complexidade, tarefas, tipificações e base de conhecimento.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
