// Package docs registra la definición OpenAPI que sirve /swagger/*.
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
        "/health": {
            "get": {
                "tags": [
                    "system"
                ],
                "summary": "Liveness",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/medications": {
            "post": {
                "tags": [
                    "medications"
                ],
                "summary": "Crear medicación y generar su calendario",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/medications.createMedicationRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medications.createMedicationResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "tags": [
                    "medications"
                ],
                "summary": "Listar medicaciones",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "active",
                        "in": "query",
                        "type": "boolean",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/medications.medicationResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/medications/low-stock": {
            "get": {
                "tags": [
                    "medications"
                ],
                "summary": "Medicaciones activas con stock <= umbral",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/medications.medicationResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/medications/{medicationID}": {
            "get": {
                "tags": [
                    "medications"
                ],
                "summary": "Obtener medicación",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medications.medicationResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "medications"
                ],
                "summary": "Actualizar medicación (regenera dosis futuras si cambia el calendario)",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/medications.updateMedicationRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medications.medicationResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "medications"
                ],
                "summary": "Borrar medicación y sus dosis",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/medications/{medicationID}/doses": {
            "get": {
                "tags": [
                    "doses"
                ],
                "summary": "Dosis de una medicación",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/doses.doseResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/doses": {
            "get": {
                "tags": [
                    "doses"
                ],
                "summary": "Dosis en un rango de fechas",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "start",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "end",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/doses.doseResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/doses/today": {
            "get": {
                "tags": [
                    "doses"
                ],
                "summary": "Dosis de hoy",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/doses.doseResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/doses/{doseID}/taken": {
            "post": {
                "tags": [
                    "doses"
                ],
                "summary": "Marcar dosis como taken",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "doseID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/doses.markRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/doses.doseResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/doses/{doseID}/missed": {
            "post": {
                "tags": [
                    "doses"
                ],
                "summary": "Marcar dosis como missed",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "doseID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/doses.markRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/doses.doseResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/doses/{doseID}/skipped": {
            "post": {
                "tags": [
                    "doses"
                ],
                "summary": "Marcar dosis como skipped",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "doseID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/doses.markRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/doses.doseResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/adherence/stats": {
            "get": {
                "tags": [
                    "adherence"
                ],
                "summary": "Estadísticas de adherencia",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "start",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "end",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/adherence.Stats"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        },
        "/adherence/daily": {
            "get": {
                "tags": [
                    "adherence"
                ],
                "summary": "Adherencia diaria",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token en producción"
                    },
                    {
                        "name": "start",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "end",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/adherence.dayResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "fields": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "field": {
                                "type": "string"
                            },
                            "message": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "medications.createMedicationRequest": {
            "type": "object",
            "required": [
                "drug_name",
                "dosage_value",
                "dosage_unit",
                "frequency",
                "start_date"
            ],
            "properties": {
                "drug_name": {
                    "type": "string"
                },
                "dosage_value": {
                    "type": "number"
                },
                "dosage_unit": {
                    "type": "string",
                    "enum": [
                        "mg",
                        "mcg",
                        "g",
                        "ml",
                        "tablet",
                        "capsule"
                    ]
                },
                "frequency": {
                    "type": "string",
                    "enum": [
                        "once_daily",
                        "twice_daily",
                        "three_times_daily",
                        "four_times_daily",
                        "every_6_hours",
                        "every_8_hours",
                        "every_12_hours",
                        "as_needed",
                        "weekly",
                        "monthly"
                    ]
                },
                "start_date": {
                    "type": "string",
                    "example": "2024-01-01"
                },
                "end_date": {
                    "type": "string",
                    "example": "2024-03-31"
                },
                "instructions": {
                    "type": "string"
                },
                "prescribed_by": {
                    "type": "string"
                },
                "stock_quantity": {
                    "type": "integer"
                },
                "refill_threshold": {
                    "type": "integer"
                },
                "is_active": {
                    "type": "boolean"
                },
                "color": {
                    "type": "string",
                    "example": "#4A90E2"
                }
            }
        },
        "medications.updateMedicationRequest": {
            "type": "object",
            "properties": {
                "drug_name": {
                    "type": "string"
                },
                "dosage_value": {
                    "type": "number"
                },
                "dosage_unit": {
                    "type": "string",
                    "enum": [
                        "mg",
                        "mcg",
                        "g",
                        "ml",
                        "tablet",
                        "capsule"
                    ]
                },
                "frequency": {
                    "type": "string",
                    "enum": [
                        "once_daily",
                        "twice_daily",
                        "three_times_daily",
                        "four_times_daily",
                        "every_6_hours",
                        "every_8_hours",
                        "every_12_hours",
                        "as_needed",
                        "weekly",
                        "monthly"
                    ]
                },
                "start_date": {
                    "type": "string",
                    "example": "2024-01-01"
                },
                "end_date": {
                    "type": "string",
                    "example": "2024-03-31"
                },
                "instructions": {
                    "type": "string"
                },
                "prescribed_by": {
                    "type": "string"
                },
                "stock_quantity": {
                    "type": "integer"
                },
                "refill_threshold": {
                    "type": "integer"
                },
                "is_active": {
                    "type": "boolean"
                },
                "color": {
                    "type": "string",
                    "example": "#4A90E2"
                }
            }
        },
        "medications.medicationResponse": {
            "type": "object",
            "properties": {
                "drug_name": {
                    "type": "string"
                },
                "dosage_value": {
                    "type": "number"
                },
                "dosage_unit": {
                    "type": "string",
                    "enum": [
                        "mg",
                        "mcg",
                        "g",
                        "ml",
                        "tablet",
                        "capsule"
                    ]
                },
                "frequency": {
                    "type": "string",
                    "enum": [
                        "once_daily",
                        "twice_daily",
                        "three_times_daily",
                        "four_times_daily",
                        "every_6_hours",
                        "every_8_hours",
                        "every_12_hours",
                        "as_needed",
                        "weekly",
                        "monthly"
                    ]
                },
                "start_date": {
                    "type": "string",
                    "example": "2024-01-01"
                },
                "end_date": {
                    "type": "string",
                    "example": "2024-03-31"
                },
                "instructions": {
                    "type": "string"
                },
                "prescribed_by": {
                    "type": "string"
                },
                "stock_quantity": {
                    "type": "integer"
                },
                "refill_threshold": {
                    "type": "integer"
                },
                "is_active": {
                    "type": "boolean"
                },
                "color": {
                    "type": "string",
                    "example": "#4A90E2"
                },
                "id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "needs_refill": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "medications.createMedicationResponse": {
            "type": "object",
            "properties": {
                "medication": {
                    "$ref": "#/definitions/medications.medicationResponse"
                },
                "scheduled_doses": {
                    "type": "integer"
                }
            }
        },
        "doses.markRequest": {
            "type": "object",
            "properties": {
                "notes": {
                    "type": "string"
                }
            }
        },
        "doses.doseResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "medication_id": {
                    "type": "string"
                },
                "scheduled_date": {
                    "type": "string",
                    "example": "2024-01-01"
                },
                "scheduled_time": {
                    "type": "string",
                    "example": "08:00"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "taken",
                        "missed",
                        "skipped"
                    ]
                },
                "taken_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "notes": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "adherence.Stats": {
            "type": "object",
            "properties": {
                "total_doses": {
                    "type": "integer"
                },
                "taken_doses": {
                    "type": "integer"
                },
                "missed_doses": {
                    "type": "integer"
                },
                "adherence_rate": {
                    "type": "number"
                },
                "current_streak": {
                    "type": "integer"
                },
                "longest_streak": {
                    "type": "integer"
                }
            }
        },
        "adherence.dayResponse": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2024-01-01"
                },
                "total_doses": {
                    "type": "integer"
                },
                "taken_doses": {
                    "type": "integer"
                },
                "missed_doses": {
                    "type": "integer"
                },
                "adherence_rate": {
                    "type": "number"
                }
            }
        }
    }
}`

// SwaggerInfo se puede ajustar desde main (Host, BasePath).
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Medication Adherence API",
	Description:      "Medicaciones, calendario de dosis y estadísticas de adherencia.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
